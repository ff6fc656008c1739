package propstore

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/joshuapare/propkit/internal/format"
)

// Parser runs the strategy chain over one property file. Each Parse call
// replaces the previous result.
type Parser struct {
	opts  Options
	log   logrus.FieldLogger
	diags *diagnosticCollector
	store *Store
	err   error
}

// NewParser creates a parser; nothing is read until Parse.
func NewParser(opts Options) *Parser {
	return &Parser{
		opts:  opts,
		log:   opts.logger().WithField("component", "propstore"),
		store: emptyStore(opts.path()),
		err:   ErrNotParsed,
	}
}

// Parse loads the configured file and runs the strategy chain. It returns
// true iff some strategy recovered at least one "ro." property. On false,
// Store is empty and Err describes the failure.
func (p *Parser) Parse() bool {
	path := p.opts.path()
	raw, err := Load(path)
	if err != nil {
		p.store = emptyStore(path)
		p.finish(StrategyNone, err)
		p.log.WithError(err).Debug("load failed")
		return false
	}
	p.log.WithField("size", len(raw)).Debugf("read %s", path)
	return p.run(path, raw)
}

// ParseBytes runs the strategy chain over a copy of raw.
func (p *Parser) ParseBytes(raw []byte) bool {
	owned := make([]byte, len(raw))
	copy(owned, raw)
	return p.run(p.opts.Path, owned)
}

// Store returns the result of the last Parse. It is never nil.
func (p *Parser) Store() *Store { return p.store }

// Err returns why the last Parse returned false, or nil after a success.
func (p *Parser) Err() error { return p.err }

func (p *Parser) run(path string, raw []byte) bool {
	p.diags = newDiagnosticCollector(p.opts.CollectDiagnostics)

	// relativeTOC feeds the generic scan as an absolute offset. It stays 0
	// when no header could be read.
	var relativeTOC uint32

	hdr, headerOff, err := format.Locate(raw)
	switch {
	case err == nil:
		relativeTOC = hdr.TOCOffset
		p.log.WithFields(logrus.Fields{
			"offset":     headerOff,
			"version":    hdr.Version,
			"num_slots":  hdr.NumSlots,
			"toc_offset": hdr.TOCOffset,
			"data_size":  hdr.DataSize,
		}).Debug("located PROP header")

		if verr := hdr.Validate(); verr != nil {
			p.diags.record(StrategyStructured, ErrKindFormat, headerOff, "header rejected: %v", verr)
			p.log.WithError(verr).Debug("header implausible, falling back")
			break
		}
		if c := p.attempt(StrategyStructured, func() *collector { return p.parseTable(raw, hdr, headerOff) }); c != nil {
			return p.commit(path, raw, StrategyStructured, c)
		}
	case errors.Is(err, format.ErrSignatureNotFound):
		p.diags.record(StrategyStructured, ErrKindFormat, -1, "signature not found")
	default:
		p.diags.record(StrategyStructured, ErrKindBounds, headerOff, "%v", err)
	}

	if c := p.attempt(StrategyTargetedSearch, func() *collector { return p.searchTargets(raw) }); c != nil {
		return p.commit(path, raw, StrategyTargetedSearch, c)
	}
	if c := p.attempt(StrategyGenericScan, func() *collector { return p.scanGeneric(raw, int(relativeTOC)) }); c != nil {
		return p.commit(path, raw, StrategyGenericScan, c)
	}

	// Keep the buffer so the fingerprint still reflects what was read.
	p.store = &Store{path: path, raw: raw, props: map[string]string{}, entries: map[string]Entry{}, diags: p.diags.list()}
	p.finish(StrategyNone, fmt.Errorf("%s: %w", path, ErrNoProperties))
	p.log.Debug("all strategies failed")
	return false
}

// attempt runs one strategy and returns its collector when it found at
// least one entry, nil otherwise.
func (p *Parser) attempt(s Strategy, fn func() *collector) *collector {
	if p.opts.Observer != nil {
		p.opts.Observer.StrategyStarted(s)
	}
	c := fn()
	if p.opts.Observer != nil {
		p.opts.Observer.StrategyFinished(s, c.found)
	}
	p.diags.record(s, ErrKindFormat, -1, "found %d entries", c.found)
	p.log.WithField("strategy", s).Debugf("found %d properties", c.found)
	if c.found == 0 {
		return nil
	}
	return c
}

func (p *Parser) commit(path string, raw []byte, s Strategy, c *collector) bool {
	props := make(map[string]string, len(c.entries))
	for k, e := range c.entries {
		props[k] = e.Value
	}
	p.store = &Store{
		path:     path,
		raw:      raw,
		props:    props,
		entries:  c.entries,
		strategy: s,
		diags:    p.diags.list(),
	}
	p.finish(s, nil)
	return true
}

func (p *Parser) finish(s Strategy, err error) {
	p.err = err
	if p.opts.Observer != nil {
		p.opts.Observer.ParseFinished(s, err)
	}
}

// Open parses the file at path (or the default for opts.Type when path is
// empty). The returned Store is never nil: on failure it is empty and the
// error says why.
func Open(path string, opts Options) (*Store, error) {
	if path != "" {
		opts.Path = path
	}
	p := NewParser(opts)
	p.Parse()
	return p.Store(), p.Err()
}

// OpenBytes parses an in-memory image. raw is copied.
func OpenBytes(raw []byte, opts Options) (*Store, error) {
	p := NewParser(opts)
	p.ParseBytes(raw)
	return p.Store(), p.Err()
}
