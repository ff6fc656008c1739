package propstore

import (
	"strings"

	"github.com/joshuapare/propkit/internal/format"
)

// Entry is a resolved property with its provenance in the raw buffer.
type Entry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Offset int    `json:"offset"` // absolute offset of the key bytes
	Size   uint32 `json:"size"`   // size field from the TOC, or the value length
}

// collector accumulates the entries of one strategy run. A strategy's
// collector is committed to the store only when it found something.
type collector struct {
	entries map[string]Entry
	found   int
}

func newCollector() *collector {
	return &collector{entries: make(map[string]Entry)}
}

// put stores e when its key is in the read-only namespace. Later duplicates
// overwrite earlier ones. It reports whether e was kept.
func (c *collector) put(e Entry) bool {
	if e.Key == "" || !strings.HasPrefix(e.Key, format.ReadOnlyPrefix) {
		return false
	}
	c.entries[e.Key] = e
	c.found++
	return true
}
