// Package printer renders a property store as JSON, aligned text, or
// build.prop style key=value lines.
package printer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/propkit/propstore"
)

const (
	DefaultIndentSize = 2
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs "key = value" lines with aligned separators.
	FormatText Format = "text"

	// FormatJSON outputs a flat JSON object with sorted keys.
	FormatJSON Format = "json"

	// FormatProp outputs build.prop style "key=value" lines.
	FormatProp Format = "prop"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatProp:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or prop)", name)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, prop).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per JSON indent level. Zero prints
	// compact JSON.
	// Default: 2
	IndentSize int

	// Keys restricts output to the listed keys, in sorted order. Keys not
	// present in the store are omitted.
	Keys []string

	// Prefix restricts output to keys starting with it.
	Prefix string

	// ShowEntries includes offset and size provenance (text and json only).
	// Default: false
	ShowEntries bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
	}
}

// Printer handles formatted output of a property store.
type Printer struct {
	opts   Options
	writer io.Writer
	store  *propstore.Store
}

// New creates a new Printer.
//
// Example:
//
//	s, _ := propstore.Open("", propstore.DefaultOptions())
//	p := printer.New(s, os.Stdout, printer.DefaultOptions())
//	p.PrintAll()
func New(s *propstore.Store, w io.Writer, opts Options) *Printer {
	return &Printer{store: s, writer: w, opts: opts}
}

// Print is shorthand for New(s, w, opts).PrintAll().
func Print(w io.Writer, s *propstore.Store, opts Options) error {
	return New(s, w, opts).PrintAll()
}

// PrintAll prints every selected property.
func (p *Printer) PrintAll() error {
	entries := p.selected()
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(entries)
	case FormatProp:
		return p.printProp(entries)
	default:
		return p.printText(entries)
	}
}

// PrintKey prints a single property. A missing key is an error.
func (p *Printer) PrintKey(key string) error {
	v, ok := p.store.Lookup(key)
	if !ok {
		return fmt.Errorf("property %q not found", key)
	}
	e := propstore.Entry{Key: key, Value: v}
	for _, se := range p.store.Entries() {
		if se.Key == key {
			e = se
			break
		}
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON([]propstore.Entry{e})
	case FormatProp:
		return p.printProp([]propstore.Entry{e})
	default:
		_, err := fmt.Fprintln(p.writer, DisplayValue(e.Value))
		return err
	}
}

// PrintDeviceInfo prints the device identity summary.
func (p *Printer) PrintDeviceInfo() error {
	info := p.store.DeviceInfo()
	if p.opts.Format == FormatJSON {
		return p.encodeJSON(info)
	}
	_, err := fmt.Fprintln(p.writer, info.Summary())
	return err
}

func (p *Printer) selected() []propstore.Entry {
	all := p.store.Entries()
	var want map[string]bool
	if len(p.opts.Keys) > 0 {
		want = make(map[string]bool, len(p.opts.Keys))
		for _, k := range p.opts.Keys {
			want[k] = true
		}
	}
	out := all[:0]
	for _, e := range all {
		if want != nil && !want[e.Key] {
			continue
		}
		if p.opts.Prefix != "" && !strings.HasPrefix(e.Key, p.opts.Prefix) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DisplayValue returns v unchanged when it is valid UTF-8 and otherwise
// decodes it as ISO-8859-1, so every byte maps to a rune.
func DisplayValue(v string) string {
	if utf8.ValidString(v) {
		return v
	}
	s, err := charmap.ISO8859_1.NewDecoder().String(v)
	if err != nil {
		return strings.ToValidUTF8(v, "�")
	}
	return s
}
