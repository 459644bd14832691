// Package dragresize turns pointer drags into percent-based resize ops.
// Positions are 1-D: the caller feeds coordinates along the axis of the
// split being resized (x for horizontal splits, y for vertical).
package dragresize

import (
	"errors"
	"sync"

	"github.com/paneweave/paneweave/internal/layout"
)

var (
	ErrNoDrag    = errors.New("dragresize: no drag in progress")
	ErrDragBusy  = errors.New("dragresize: drag already in progress")
	ErrBadExtent = errors.New("dragresize: container extent must be positive")
)

// Applier applies a resize delta to a pane. *layout.Manager satisfies it.
type Applier interface {
	ResizePane(layoutID, paneID string, deltaPercent float64) (layout.Result, error)
}

// Tracker converts a drag gesture into a stream of incremental resize ops.
// Each Move applies only the delta since the previous Move, so the engine's
// clamping stays authoritative and repeated moves never accumulate error.
type Tracker struct {
	applier Applier

	mu       sync.Mutex
	active   bool
	layoutID string
	paneID   string
	extent   float64
	lastPos  float64
}

func NewTracker(applier Applier) *Tracker {
	return &Tracker{applier: applier}
}

// Begin starts a drag on the divider after paneID. extent is the container's
// size in cells along the drag axis; startPos is the pointer position.
func (t *Tracker) Begin(layoutID, paneID string, extent, startPos int) error {
	if extent <= 0 {
		return ErrBadExtent
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return ErrDragBusy
	}
	t.active = true
	t.layoutID = layoutID
	t.paneID = paneID
	t.extent = float64(extent)
	t.lastPos = float64(startPos)
	return nil
}

// Move applies the movement since the last call as a percent delta. A failed
// apply cancels the drag so a stale gesture cannot keep mutating the layout.
func (t *Tracker) Move(pos int) (layout.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return layout.Result{}, ErrNoDrag
	}
	delta := float64(pos) - t.lastPos
	if delta == 0 {
		return layout.Result{}, nil
	}
	deltaPercent := delta / t.extent * layout.FullSize

	result, err := t.applier.ResizePane(t.layoutID, t.paneID, deltaPercent)
	if err != nil {
		t.reset()
		return layout.Result{}, err
	}
	t.lastPos = float64(pos)
	return result, nil
}

// End finishes the drag. Safe to call without an active drag.
func (t *Tracker) End() {
	t.mu.Lock()
	t.reset()
	t.mu.Unlock()
}

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tracker) reset() {
	t.active = false
	t.layoutID = ""
	t.paneID = ""
	t.extent = 0
	t.lastPos = 0
}
