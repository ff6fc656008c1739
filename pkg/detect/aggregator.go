package detect

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// Aggregator runs a fixed list of checks.
type Aggregator struct {
	checks   []Check
	log      logrus.FieldLogger
	observer Observer
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Aggregator) { a.log = l }
}

// WithObserver registers an observer notified after every check.
func WithObserver(o Observer) Option {
	return func(a *Aggregator) { a.observer = o }
}

// NewAggregator builds an aggregator over checks.
func NewAggregator(checks []Check, opts ...Option) *Aggregator {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	a := &Aggregator{checks: checks, log: discard}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Checks returns the configured checks.
func (a *Aggregator) Checks() []Check { return a.checks }

// Run executes every check in order, even after one has fired, so the verdict
// lists all signals. A check that errors counts as not detected. Run stops
// early only when ctx is cancelled; the remaining checks are then omitted.
func (a *Aggregator) Run(ctx context.Context) Verdict {
	v := Verdict{Findings: make([]Finding, 0, len(a.checks))}
	for _, c := range a.checks {
		if ctx.Err() != nil {
			a.log.WithError(ctx.Err()).Warn("detection cancelled")
			break
		}
		detected, err := c.Detect(ctx)
		f := Finding{Check: c.Name(), Category: c.Category(), Detected: detected && err == nil, Err: err}
		if err != nil {
			f.Error = err.Error()
		}

		entry := a.log.WithFields(logrus.Fields{
			"check":    f.Check,
			"category": f.Category,
			"detected": f.Detected,
		})
		if err != nil {
			entry.WithError(err).Debug("check failed")
		} else {
			entry.Debug("check finished")
		}

		if a.observer != nil {
			a.observer.CheckFinished(f)
		}
		v.Compromised = v.Compromised || f.Detected
		v.Findings = append(v.Findings, f)
	}
	return v
}
