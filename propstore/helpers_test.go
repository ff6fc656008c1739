package propstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countingObserver records every callback so tests can assert which
// strategies ran.
type countingObserver struct {
	started  map[Strategy]int
	finished map[Strategy]int
	found    map[Strategy]int
	winner   Strategy
	err      error
	done     int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		started:  map[Strategy]int{},
		finished: map[Strategy]int{},
		found:    map[Strategy]int{},
	}
}

func (o *countingObserver) StrategyStarted(s Strategy) { o.started[s]++ }

func (o *countingObserver) StrategyFinished(s Strategy, found int) {
	o.finished[s]++
	o.found[s] = found
}

func (o *countingObserver) ParseFinished(s Strategy, err error) {
	o.winner = s
	o.err = err
	o.done++
}

func parseBytes(t *testing.T, raw []byte, obs Observer) (*Store, bool) {
	t.Helper()
	opts := DefaultOptions()
	opts.Observer = obs
	opts.CollectDiagnostics = true
	p := NewParser(opts)
	ok := p.ParseBytes(raw)
	require.NotNil(t, p.Store())
	if ok {
		require.NoError(t, p.Err())
	} else {
		require.Error(t, p.Err())
	}
	return p.Store(), ok
}
