package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// WatchConfig holds the parameters for a Watcher.
type WatchConfig struct {
	// Debounce is the quiet period after the last event before the batch
	// re-runs. Zero or negative values fall back to 200ms.
	Debounce time.Duration
	// OnResults receives the results of every re-run. A nil callback is a no-op.
	OnResults func(ctx context.Context, results []FileResult)
}

// Watcher re-runs a Batch on the files that change under its root.
// Start must be called exactly once.
type Watcher struct {
	batch    *Batch
	cfg      WatchConfig
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	started  atomic.Bool

	mu      sync.RWMutex
	active  bool
	runs    int
	lastRun *time.Time
}

// NewWatcher creates a Watcher for b.
func NewWatcher(b *Batch, cfg WatchConfig) (*Watcher, error) {
	if b == nil {
		return nil, errors.New("watch: nil batch")
	}
	root, err := filepath.Abs(b.Root())
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{batch: b, cfg: cfg, root: root, debounce: debounce}, nil
}

// Start registers the directories under the root and begins watching in the
// background. The returned channel yields the loop error (if any) and is
// closed once the loop exits, which happens when ctx is done.
func (w *Watcher) Start(ctx context.Context) (<-chan error, error) {
	if !w.started.CompareAndSwap(false, true) {
		return nil, errors.New("watch: already started")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	w.fsw = fsw

	if err := w.addTree(w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.setActive(true)
	done := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(done)
		defer w.setActive(false)
		defer w.fsw.Close()

		err := w.loop(ctx)
		if err != nil {
			done <- err
		}
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		w.batch.logger.Error("watch loop failed", "error", err)
	}))

	return done, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.dirIgnored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %q: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) dirIgnored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)
	return isIgnored(rel, w.batch.cfg.Ignore) || isIgnored(rel+"/", w.batch.cfg.Ignore)
}

func (w *Watcher) loop(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watch: events channel closed")
			}
			if rels := w.accept(event); len(rels) > 0 {
				for _, rel := range rels {
					pending[rel] = struct{}{}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watch: errors channel closed")
			}
			w.batch.logger.Error("fsnotify error", "error", err)

		case <-timer.C:
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

// accept filters an fsnotify event and returns the relative paths to re-run.
func (w *Watcher) accept(event fsnotify.Event) []string {
	w.batch.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.dirIgnored(event.Name) {
				return nil
			}
			if err := w.addTree(event.Name); err != nil {
				w.batch.logger.Warn("watch: add new directory", "path", event.Name, "error", err)
			}
			return w.reconcileDir(event.Name)
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	rel, ok := w.selected(event.Name)
	if !ok {
		return nil
	}
	return []string{rel}
}

// reconcileDir returns the selected files already present under a directory
// that appeared after the initial walk (moved in, copied, or written to
// before its watch was registered).
func (w *Watcher) reconcileDir(dir string) []string {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && w.dirIgnored(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if rel, ok := w.selected(path); ok {
			found = append(found, rel)
		}
		return nil
	})
	if err != nil {
		w.batch.logger.Warn("watch: reconcile new directory", "path", dir, "error", err)
	}
	return found
}

// selected maps an absolute path to its slash-separated path relative to the
// root and reports whether the batch picks it up.
func (w *Watcher) selected(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return rel, w.batch.Selects(rel)
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	files := make([]string, 0, len(pending))
	for rel := range pending {
		if info, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(rel))); err == nil && info.Mode().IsRegular() {
			files = append(files, rel)
		}
	}
	if len(files) == 0 {
		return
	}
	sort.Strings(files)

	results, err := w.batch.RunFiles(ctx, files)
	w.recordRun()
	if err != nil {
		return
	}
	if w.cfg.OnResults != nil {
		w.cfg.OnResults(ctx, results)
	}
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

func (w *Watcher) recordRun() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	w.runs++
	w.lastRun = &now
}
