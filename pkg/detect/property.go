package detect

import (
	"context"

	"github.com/joshuapare/propkit/propstore"
)

// PropertySource answers property lookups. *propstore.Store implements it.
type PropertySource interface {
	Lookup(key string) (string, bool)
}

// BuildTags fires on a debuggable or insecure build.
type BuildTags struct {
	Source PropertySource
}

func (c *BuildTags) Name() string       { return "build_tags" }
func (c *BuildTags) Category() Category { return CategoryRoot }

func (c *BuildTags) Detect(_ context.Context) (bool, error) {
	if c.Source == nil {
		return false, nil
	}
	if v, _ := c.Source.Lookup(propstore.KeyDebuggable); v == "1" {
		return true, nil
	}
	if v, _ := c.Source.Lookup(propstore.KeySecure); v == "0" {
		return true, nil
	}
	return false, nil
}

// PropertyTamper parses the build property area and fires when parsing fails
// or a critical key is missing, empty or a placeholder.
type PropertyTamper struct {
	Options propstore.Options
}

func (c *PropertyTamper) Name() string       { return "property_tamper" }
func (c *PropertyTamper) Category() Category { return CategoryProperty }

func (c *PropertyTamper) Detect(_ context.Context) (bool, error) {
	s, err := propstore.Open("", c.Options)
	if err != nil {
		return true, nil
	}
	return s.CheckForTampering(), nil
}
