package render

import (
	"testing"

	"github.com/paneweave/paneweave/internal/layout"
)

func splitOnce(t *testing.T, l *layout.Layout, paneID string, dir layout.Direction, ratio float64) layout.Result {
	t.Helper()
	result, err := layout.NewEngine(l).Apply(layout.SplitOp{PaneID: paneID, Direction: dir, Ratio: ratio})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	return result
}

func TestRectsSingleLeafFillsGrid(t *testing.T) {
	l := layout.New("layout-test", "")
	rects := Rects(l, 80, 24)
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	got := rects[l.Root.ID]
	if got != (Rect{X: 0, Y: 0, W: 80, H: 24}) {
		t.Fatalf("unexpected rect %+v", got)
	}
}

func TestRectsHorizontalSplit(t *testing.T) {
	l := layout.New("layout-test", "")
	result := splitOnce(t, l, l.Root.ID, layout.DirectionHorizontal, 0.5)

	rects := Rects(l, 81, 24)
	first := rects[result.NewPaneIDs[0]]
	second := rects[result.NewPaneIDs[1]]

	if first.W != 40 {
		t.Fatalf("expected floor(40.5)=40 for the first pane, got %d", first.W)
	}
	if second.W != 41 {
		t.Fatalf("the last pane must absorb the remainder, got %d", second.W)
	}
	if second.X != 40 || first.H != 24 || second.H != 24 {
		t.Fatalf("unexpected geometry: %+v / %+v", first, second)
	}
	if first.W+second.W != 81 {
		t.Fatalf("widths must cover the grid exactly")
	}
}

func TestRectsVerticalSplitRatio(t *testing.T) {
	l := layout.New("layout-test", "")
	result := splitOnce(t, l, l.Root.ID, layout.DirectionVertical, 0.3)

	rects := Rects(l, 80, 30)
	first := rects[result.NewPaneIDs[0]]
	second := rects[result.NewPaneIDs[1]]

	if first.H != 9 || second.H != 21 {
		t.Fatalf("expected 9/21 rows, got %d/%d", first.H, second.H)
	}
	if second.Y != 9 {
		t.Fatalf("second pane must start below the first, got y=%d", second.Y)
	}
}

func TestRectsNestedCoverGridWithoutOverlap(t *testing.T) {
	l := layout.New("layout-test", "")
	result := splitOnce(t, l, l.Root.ID, layout.DirectionHorizontal, 0.6)
	splitOnce(t, l, result.NewPaneIDs[1], layout.DirectionVertical, 0.5)

	width, height := 120, 37
	rects := Rects(l, width, height)
	if len(rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(rects))
	}

	covered := 0
	for _, rect := range rects {
		if rect.Empty() {
			t.Fatalf("empty rect %+v", rect)
		}
		covered += rect.W * rect.H
	}
	if covered != width*height {
		t.Fatalf("rects must tile the grid: covered %d of %d cells", covered, width*height)
	}
}

func TestRectsDegenerateBounds(t *testing.T) {
	l := layout.New("layout-test", "")
	if got := Rects(l, 0, 24); len(got) != 0 {
		t.Fatalf("expected no rects for zero width, got %d", len(got))
	}
	if got := Rects(nil, 80, 24); len(got) != 0 {
		t.Fatalf("expected no rects for a nil layout, got %d", len(got))
	}
}

func TestAllRectsIncludesSplits(t *testing.T) {
	l := layout.New("layout-test", "")
	result := splitOnce(t, l, l.Root.ID, layout.DirectionHorizontal, 0.5)
	splitOnce(t, l, result.NewPaneIDs[1], layout.DirectionVertical, 0.5)

	rects := AllRects(l, 80, 24)
	root := rects[l.Root.ID]
	if root != (Rect{X: 0, Y: 0, W: 80, H: 24}) {
		t.Fatalf("expected the root split covered, got %+v", root)
	}
	inner := rects[result.NewPaneIDs[1]]
	if inner.W != 40 || inner.H != 24 {
		t.Fatalf("expected the inner split's container rect, got %+v", inner)
	}
	if len(rects) != 5 {
		t.Fatalf("expected 2 splits + 3 leaves, got %d", len(rects))
	}
}

func TestPaneAt(t *testing.T) {
	l := layout.New("layout-test", "")
	result := splitOnce(t, l, l.Root.ID, layout.DirectionHorizontal, 0.5)

	id, ok := PaneAt(l, 80, 24, 10, 5)
	if !ok || id != result.NewPaneIDs[0] {
		t.Fatalf("expected the left pane at (10,5), got %q ok=%v", id, ok)
	}
	id, ok = PaneAt(l, 80, 24, 70, 5)
	if !ok || id != result.NewPaneIDs[1] {
		t.Fatalf("expected the right pane at (70,5), got %q ok=%v", id, ok)
	}
	if _, ok := PaneAt(l, 80, 24, 200, 5); ok {
		t.Fatalf("coordinates outside the grid must miss")
	}
}

func TestRectFor(t *testing.T) {
	l := layout.New("layout-test", "")
	result := splitOnce(t, l, l.Root.ID, layout.DirectionHorizontal, 0.5)

	rect, ok := RectFor(l, result.NewPaneIDs[1], 80, 24)
	if !ok {
		t.Fatalf("expected a rect for the right pane")
	}
	if rect.X != 40 || rect.W != 40 {
		t.Fatalf("unexpected right pane rect %+v", rect)
	}
	if _, ok := RectFor(l, "pane-missing", 80, 24); ok {
		t.Fatalf("unknown ids must miss")
	}
}
