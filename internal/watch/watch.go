// Package watch re-parses a property file whenever it changes on disk and
// reports fingerprint changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/joshuapare/propkit/propstore"
)

const DefaultDebounce = 200 * time.Millisecond

// Change describes a property file whose content changed.
type Change struct {
	Path        string
	Fingerprint string
	Previous    string
	// Drift lists keys added, removed or changed since the previous parse.
	Drift []string
	Store *propstore.Store
	// Err is the parse error of the new content, if any.
	Err error
}

// Handler receives changes. It runs on the watcher goroutine.
type Handler func(Change)

// Watcher watches the directory holding one property file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	opts     propstore.Options
	debounce time.Duration
	logger   logrus.FieldLogger
	current  *propstore.Store
}

// New parses path once and starts watching its directory. A file that does
// not exist yet is fine: its creation is reported as a change.
func New(path string, opts propstore.Options, debounce time.Duration, logger logrus.FieldLogger) (*Watcher, error) {
	path = filepath.Clean(path)
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	opts.Path = path
	initial, perr := propstore.Open(path, opts)
	w := &Watcher{
		watcher:  fsw,
		path:     path,
		opts:     opts,
		debounce: debounce,
		logger:   logger.WithField("file", path),
		current:  initial,
	}
	entry := w.logger.WithField("fingerprint", initial.Fingerprint())
	if perr != nil {
		entry = entry.WithError(perr)
	}
	entry.Info("watching property file")
	return w, nil
}

// Current returns the most recent parse.
func (w *Watcher) Current() *propstore.Store { return w.current }

// Run delivers changes to handle until ctx is cancelled. It closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.WithField("event", event.Op.String()).Debug("file event")
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reparse(handle)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.WithError(err).Error("watcher error")
		}
	}
}

func (w *Watcher) reparse(handle Handler) {
	next, err := propstore.Open(w.path, w.opts)
	prev := w.current
	if next.Fingerprint() == prev.Fingerprint() {
		return
	}
	w.current = next

	c := Change{
		Path:        w.path,
		Fingerprint: next.Fingerprint(),
		Previous:    prev.Fingerprint(),
		Drift:       Drift(prev, next),
		Store:       next,
		Err:         err,
	}
	w.logger.WithFields(logrus.Fields{
		"previous":    c.Previous,
		"fingerprint": c.Fingerprint,
		"drift":       len(c.Drift),
	}).Warn("property file changed")
	handle(c)
}

// Drift returns, sorted, the keys whose presence or value differs between
// two stores.
func Drift(prev, next *propstore.Store) []string {
	var out []string
	for _, k := range prev.Keys() {
		if next.IsPropertyTampered(k, prev.Get(k)) {
			out = append(out, k)
		}
	}
	for _, k := range next.Keys() {
		if _, ok := prev.Lookup(k); !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
