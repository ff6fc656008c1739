package propstore

// Strategy identifies which parser produced a store.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyStructured
	StrategyTargetedSearch
	StrategyGenericScan
)

func (s Strategy) String() string {
	switch s {
	case StrategyStructured:
		return "structured"
	case StrategyTargetedSearch:
		return "targeted_search"
	case StrategyGenericScan:
		return "generic_scan"
	default:
		return "none"
	}
}

// Strategies lists the chain in execution order.
var Strategies = []Strategy{StrategyStructured, StrategyTargetedSearch, StrategyGenericScan}

// Observer is notified as the strategy chain runs. Implementations must be
// cheap; they are called synchronously from Parse.
type Observer interface {
	// StrategyStarted is called before a strategy runs.
	StrategyStarted(s Strategy)
	// StrategyFinished reports how many "ro." entries the strategy found.
	StrategyFinished(s Strategy, found int)
	// ParseFinished is called once per Parse with the winning strategy, or
	// StrategyNone and the failure.
	ParseFinished(s Strategy, err error)
}
