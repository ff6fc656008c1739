package propstore

import (
	"io"

	"github.com/sirupsen/logrus"
)

// PropertiesDir is where init publishes the property areas.
const PropertiesDir = "/dev/__properties__"

// Type selects which property area to read by default.
type Type int

const (
	TypeBuild Type = iota
	TypeSystem
	TypeDefault
	TypeVendor
)

// Path returns the well-known file backing the area.
func (t Type) Path() string {
	switch t {
	case TypeSystem:
		return PropertiesDir + "/u:object_r:system_prop:s0"
	case TypeDefault:
		return PropertiesDir + "/u:object_r:default_prop:s0"
	case TypeVendor:
		return PropertiesDir + "/u:object_r:vendor_build_prop:s0"
	default:
		return PropertiesDir + "/u:object_r:build_prop:s0"
	}
}

func (t Type) String() string {
	switch t {
	case TypeSystem:
		return "system"
	case TypeDefault:
		return "default"
	case TypeVendor:
		return "vendor"
	default:
		return "build"
	}
}

// ParseType maps a name produced by Type.String back to a Type. Unknown
// names select TypeBuild.
func ParseType(name string) Type {
	switch name {
	case "system":
		return TypeSystem
	case "default":
		return TypeDefault
	case "vendor":
		return TypeVendor
	default:
		return TypeBuild
	}
}

// Options configures a Parser.
type Options struct {
	// Type selects the default path when Path is empty.
	// Default: TypeBuild
	Type Type

	// Path overrides the file to read.
	Path string

	// Logger receives debug tracing of the strategy chain.
	// Default: discard
	Logger logrus.FieldLogger

	// Observer is notified of strategy attempts. Optional.
	Observer Observer

	// CollectDiagnostics records skipped entries and strategy outcomes on
	// the resulting Store.
	CollectDiagnostics bool
}

// DefaultOptions reads the build property area with logging disabled.
func DefaultOptions() Options {
	return Options{Type: TypeBuild}
}

func (o Options) path() string {
	if o.Path != "" {
		return o.Path
	}
	return o.Type.Path()
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
