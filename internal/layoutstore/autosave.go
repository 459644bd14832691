package layoutstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/paneweave/paneweave/internal/layout"
)

const defaultDebounce = 500 * time.Millisecond

// Autosaver batches layout changes and writes them after a quiet period.
// Wire its Notify to the manager's change hook; rapid drag-resize sequences
// then collapse into one disk write per layout.
type Autosaver struct {
	store    *Store
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*layout.Layout
	timer   *time.Timer
	closed  bool
}

// NewAutosaver creates an autosaver. debounce <= 0 uses the default.
func NewAutosaver(store *Store, debounce time.Duration) *Autosaver {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Autosaver{
		store:    store,
		debounce: debounce,
		pending:  make(map[string]*layout.Layout),
	}
}

// Notify records a changed layout for the next flush. The layout is cloned
// so later mutations do not race the write.
func (a *Autosaver) Notify(l *layout.Layout) {
	if a == nil || l == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending[l.ID] = l.Clone()
	if a.timer == nil {
		a.timer = time.AfterFunc(a.debounce, a.flushTimer)
		return
	}
	a.timer.Reset(a.debounce)
}

func (a *Autosaver) flushTimer() {
	if err := a.Flush(context.Background()); err != nil {
		slog.Warn("autosave flush failed", "error", err)
	}
}

// Flush writes all pending layouts now. The last error wins; every pending
// layout is attempted regardless.
func (a *Autosaver) Flush(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	batch := a.pending
	a.pending = make(map[string]*layout.Layout)
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()

	var lastErr error
	for _, l := range batch {
		if err := a.store.Save(ctx, l); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Close flushes outstanding changes and stops the autosaver.
func (a *Autosaver) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()
	return a.Flush(ctx)
}
