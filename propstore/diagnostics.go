package propstore

import "fmt"

// Diagnostic records one thing the parser skipped or rejected.
type Diagnostic struct {
	Strategy Strategy `json:"strategy"`
	Kind     ErrKind  `json:"kind"`
	Offset   int      `json:"offset"`
	Issue    string   `json:"issue"`
}

func (d Diagnostic) String() string {
	if d.Offset < 0 {
		return fmt.Sprintf("[%s/%s] %s", d.Strategy, d.Kind, d.Issue)
	}
	return fmt.Sprintf("[%s/%s] 0x%X: %s", d.Strategy, d.Kind, d.Offset, d.Issue)
}

// diagnosticCollector is nil unless Options.CollectDiagnostics is set, so
// the record calls on the hot path cost a nil check.
type diagnosticCollector struct {
	items []Diagnostic
}

func newDiagnosticCollector(enabled bool) *diagnosticCollector {
	if !enabled {
		return nil
	}
	return &diagnosticCollector{}
}

func (dc *diagnosticCollector) record(s Strategy, kind ErrKind, off int, format string, args ...any) {
	if dc == nil {
		return
	}
	dc.items = append(dc.items, Diagnostic{
		Strategy: s,
		Kind:     kind,
		Offset:   off,
		Issue:    fmt.Sprintf(format, args...),
	})
}

func (dc *diagnosticCollector) list() []Diagnostic {
	if dc == nil {
		return nil
	}
	return dc.items
}
