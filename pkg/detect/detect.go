// Package detect runs environment integrity checks: hook frameworks attached
// to the process, root tooling on the device, and a tampered build property
// area. Each check is a small value implementing Check; an Aggregator runs a
// set of them and ORs the results into a Verdict.
package detect

import (
	"context"
	"fmt"
)

// Category groups checks by what they look for.
type Category string

const (
	CategoryHook     Category = "hook"
	CategoryRoot     Category = "root"
	CategoryProperty Category = "property"
)

// Check is one detection signal.
type Check interface {
	// Name is a stable identifier used in logs, metrics and output.
	Name() string
	// Category reports the check's group.
	Category() Category
	// Detect reports whether the signal is present. An error means the
	// check could not decide.
	Detect(ctx context.Context) (bool, error)
}

// Finding is the outcome of one check.
type Finding struct {
	Check    string   `json:"check"`
	Category Category `json:"category"`
	Detected bool     `json:"detected"`
	Err      error    `json:"-"`
	Error    string   `json:"error,omitempty"`
}

func (f Finding) String() string {
	switch {
	case f.Err != nil:
		return fmt.Sprintf("%s/%s: error: %v", f.Category, f.Check, f.Err)
	case f.Detected:
		return fmt.Sprintf("%s/%s: DETECTED", f.Category, f.Check)
	default:
		return fmt.Sprintf("%s/%s: clean", f.Category, f.Check)
	}
}

// Verdict is the combined result of an Aggregator run.
type Verdict struct {
	Compromised bool      `json:"compromised"`
	Findings    []Finding `json:"findings"`
}

// Detected returns the findings that fired.
func (v Verdict) Detected() []Finding {
	var out []Finding
	for _, f := range v.Findings {
		if f.Detected {
			out = append(out, f)
		}
	}
	return out
}

// ByCategory reports whether any check in c fired.
func (v Verdict) ByCategory(c Category) bool {
	for _, f := range v.Findings {
		if f.Category == c && f.Detected {
			return true
		}
	}
	return false
}

// Observer is notified after each check runs.
type Observer interface {
	CheckFinished(f Finding)
}
