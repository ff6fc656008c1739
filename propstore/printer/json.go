package printer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/joshuapare/propkit/propstore"
)

// jsonEntry is one property with provenance (ShowEntries).
type jsonEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
	Size   uint32 `json:"size"`
}

// printJSON writes a flat object. encoding/json sorts map keys, which
// matches Store.Entries ordering.
func (p *Printer) printJSON(entries []propstore.Entry) error {
	if p.opts.ShowEntries {
		out := make([]jsonEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, jsonEntry{Key: e.Key, Value: DisplayValue(e.Value), Offset: e.Offset, Size: e.Size})
		}
		return p.encodeJSON(out)
	}
	obj := make(map[string]string, len(entries))
	for _, e := range entries {
		obj[e.Key] = DisplayValue(e.Value)
	}
	return p.encodeJSON(obj)
}

func (p *Printer) encodeJSON(v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if p.opts.IndentSize > 0 {
		enc.SetIndent("", strings.Repeat(" ", p.opts.IndentSize))
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := p.writer.Write(b.Bytes())
	return err
}
