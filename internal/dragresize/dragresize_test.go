package dragresize

import (
	"errors"
	"math"
	"testing"

	"github.com/paneweave/paneweave/internal/layout"
)

func newDragFixture(t *testing.T) (*layout.Manager, *Tracker, []string) {
	t.Helper()
	m := layout.NewManager()
	l := m.Create("layout-main", "")
	result, err := m.SplitPane("layout-main", l.Root.ID, layout.DirectionHorizontal, 0.5)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	return m, NewTracker(m), result.NewPaneIDs
}

func paneSize(t *testing.T, m *layout.Manager, paneID string) float64 {
	t.Helper()
	node := m.Layout("layout-main").FindPane(paneID)
	if node == nil {
		t.Fatalf("pane %q not found", paneID)
	}
	return node.Size
}

func TestDragConvertsCellsToPercent(t *testing.T) {
	m, tracker, panes := newDragFixture(t)

	// 100-cell container: 10 cells of travel is 10 percent.
	if err := tracker.Begin("layout-main", panes[0], 100, 50); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tracker.Move(60); err != nil {
		t.Fatalf("move: %v", err)
	}
	tracker.End()

	if got := paneSize(t, m, panes[0]); math.Abs(got-60) > layout.SizeEpsilon {
		t.Fatalf("expected 60 percent, got %v", got)
	}
}

func TestDragAppliesIncrementalDeltas(t *testing.T) {
	m, tracker, panes := newDragFixture(t)

	if err := tracker.Begin("layout-main", panes[0], 200, 100); err != nil {
		t.Fatalf("begin: %v", err)
	}
	// Forward 20 cells, back 10: net +10 cells of a 200-cell extent.
	if _, err := tracker.Move(120); err != nil {
		t.Fatalf("move forward: %v", err)
	}
	if _, err := tracker.Move(110); err != nil {
		t.Fatalf("move back: %v", err)
	}
	tracker.End()

	if got := paneSize(t, m, panes[0]); math.Abs(got-55) > layout.SizeEpsilon {
		t.Fatalf("expected 55 percent after the net move, got %v", got)
	}
}

func TestDragClampsAtLimits(t *testing.T) {
	m, tracker, panes := newDragFixture(t)

	if err := tracker.Begin("layout-main", panes[0], 100, 50); err != nil {
		t.Fatalf("begin: %v", err)
	}
	// Way past the edge: the engine clamps to the 90/10 defaults.
	if _, err := tracker.Move(150); err != nil {
		t.Fatalf("move: %v", err)
	}
	tracker.End()

	if got := paneSize(t, m, panes[0]); got != layout.DefaultMaxSize {
		t.Fatalf("expected the max clamp, got %v", got)
	}
}

func TestDragFailureCancelsGesture(t *testing.T) {
	_, tracker, _ := newDragFixture(t)

	if err := tracker.Begin("layout-main", "pane-missing", 100, 50); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tracker.Move(60); !errors.Is(err, layout.ErrPaneNotFound) {
		t.Fatalf("expected ErrPaneNotFound, got %v", err)
	}
	if tracker.Dragging() {
		t.Fatalf("a failed apply must cancel the drag")
	}
	if _, err := tracker.Move(70); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag after the cancel, got %v", err)
	}
}

func TestDragGuards(t *testing.T) {
	_, tracker, panes := newDragFixture(t)

	if err := tracker.Begin("layout-main", panes[0], 0, 10); !errors.Is(err, ErrBadExtent) {
		t.Fatalf("expected ErrBadExtent, got %v", err)
	}
	if _, err := tracker.Move(10); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag before begin, got %v", err)
	}

	if err := tracker.Begin("layout-main", panes[0], 100, 10); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tracker.Begin("layout-main", panes[1], 100, 10); !errors.Is(err, ErrDragBusy) {
		t.Fatalf("expected ErrDragBusy, got %v", err)
	}
	tracker.End()
	tracker.End() // idempotent
}

func TestDragZeroMoveIsNoOp(t *testing.T) {
	m, tracker, panes := newDragFixture(t)
	if err := tracker.Begin("layout-main", panes[0], 100, 50); err != nil {
		t.Fatalf("begin: %v", err)
	}
	result, err := tracker.Move(50)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if result.Changed {
		t.Fatalf("no travel must not change the layout")
	}
	if got := paneSize(t, m, panes[0]); got != 50 {
		t.Fatalf("expected the size untouched, got %v", got)
	}
}
