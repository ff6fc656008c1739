package propstore

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Store is the immutable result of one parse.
type Store struct {
	path     string
	raw      []byte
	props    map[string]string
	entries  map[string]Entry
	strategy Strategy
	diags    []Diagnostic
}

func emptyStore(path string) *Store {
	return &Store{path: path, props: map[string]string{}, entries: map[string]Entry{}}
}

// Path returns the file the store was read from ("" for in-memory images).
func (s *Store) Path() string { return s.path }

// Strategy returns the strategy that produced the store.
func (s *Store) Strategy() Strategy { return s.strategy }

// Parsed reports whether any strategy succeeded.
func (s *Store) Parsed() bool { return s.strategy != StrategyNone }

// Len returns the number of properties.
func (s *Store) Len() int { return len(s.props) }

// Get returns the value for key, or "" when absent.
func (s *Store) Get(key string) string { return s.props[key] }

// Lookup returns the value for key and whether it was present.
func (s *Store) Lookup(key string) (string, bool) {
	v, ok := s.props[key]
	return v, ok
}

// All returns a copy of the key/value mapping.
func (s *Store) All() map[string]string { return maps.Clone(s.props) }

// Keys returns the property keys in sorted order.
func (s *Store) Keys() []string {
	return slices.Sorted(maps.Keys(s.props))
}

// Entries returns every property with its provenance, sorted by key.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, k := range s.Keys() {
		out = append(out, s.entries[k])
	}
	return out
}

// Raw returns a copy of the bytes the store was parsed from.
func (s *Store) Raw() []byte { return slices.Clone(s.raw) }

// Size returns the length of the raw buffer.
func (s *Store) Size() int { return len(s.raw) }

// Fingerprint returns a 64-bit xxHash of the raw buffer as 16 hex digits,
// or "" when nothing was read. It is for change detection only.
func (s *Store) Fingerprint() string {
	if len(s.raw) == 0 {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(s.raw))
}

// Diagnostics returns what the parser recorded when
// Options.CollectDiagnostics was set.
func (s *Store) Diagnostics() []Diagnostic { return slices.Clone(s.diags) }
