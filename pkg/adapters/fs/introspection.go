package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Root     string     `json:"root"`
	Patterns []string   `json:"patterns"`
	Debounce string     `json:"debounce"`
	Active   bool       `json:"active"`
	Runs     int        `json:"runs"`
	LastRun  *time.Time `json:"last_run,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	patterns := make([]string, len(w.batch.cfg.Patterns))
	copy(patterns, w.batch.cfg.Patterns)

	return WatcherState{
		Root:     w.root,
		Patterns: patterns,
		Debounce: w.debounce.String(),
		Active:   w.active,
		Runs:     w.runs,
		LastRun:  w.lastRun,
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
