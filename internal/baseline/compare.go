package baseline

import (
	"slices"

	"github.com/joshuapare/propkit/propstore"
)

// Drift is a baseline key whose live value no longer matches.
type Drift struct {
	Key      string `json:"key"`
	Baseline string `json:"baseline"`
	Current  string `json:"current"`
	Missing  bool   `json:"missing"`
}

// Report is the result of comparing a live store against a snapshot.
type Report struct {
	SnapshotID         string   `json:"snapshot_id"`
	FingerprintChanged bool     `json:"fingerprint_changed"`
	Changed            []Drift  `json:"changed,omitempty"`
	Added              []string `json:"added,omitempty"`
}

// Tampered reports whether any recorded property drifted. New keys alone
// do not count.
func (r Report) Tampered() bool { return len(r.Changed) > 0 }

// Compare checks every baseline property against s with
// IsPropertyTampered, and lists keys that are new in s.
func Compare(snap *Snapshot, s *propstore.Store) Report {
	rep := Report{
		SnapshotID:         snap.ID,
		FingerprintChanged: snap.Fingerprint != s.Fingerprint(),
	}
	base := snap.Map()
	keys := make([]string, 0, len(base))
	for k := range base {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		want := base[k]
		if !s.IsPropertyTampered(k, want) {
			continue
		}
		cur, ok := s.Lookup(k)
		rep.Changed = append(rep.Changed, Drift{Key: k, Baseline: want, Current: cur, Missing: !ok})
	}
	for _, k := range s.Keys() {
		if _, ok := base[k]; !ok {
			rep.Added = append(rep.Added, k)
		}
	}
	return rep
}
