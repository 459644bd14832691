package layout

import (
	"math"
	"testing"
)

func TestParseGrid(t *testing.T) {
	cases := []struct {
		raw  string
		rows int
		cols int
		ok   bool
	}{
		{"2x2", 2, 2, true},
		{"1x3", 1, 3, true},
		{" 3X2 ", 3, 2, true},
		{"0x2", 0, 0, false},
		{"2x", 0, 0, false},
		{"axb", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		grid, err := ParseGrid(tc.raw)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseGrid(%q): unexpected err=%v", tc.raw, err)
		}
		if tc.ok && (grid.Rows != tc.rows || grid.Columns != tc.cols) {
			t.Fatalf("ParseGrid(%q) = %+v", tc.raw, grid)
		}
	}
}

func TestBuildGridLayout(t *testing.T) {
	l, err := BuildLayout(&Preset{Name: "grid", Grid: "2x2"}, "layout-grid")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := CountLeaves(l.Root); got != 4 {
		t.Fatalf("expected 4 leaves, got %d", got)
	}
	if l.Root.Direction != DirectionVertical {
		t.Fatalf("expected vertical rows, got %v", l.Root.Direction)
	}
	for _, row := range l.Root.Children {
		if row.Direction != DirectionHorizontal {
			t.Fatalf("expected horizontal columns, got %v", row.Direction)
		}
	}
	mustValidate(t, l)
}

func TestBuildGridSingleRow(t *testing.T) {
	l, err := BuildLayout(&Preset{Name: "thirds", Grid: "1x3"}, "layout-thirds")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := CountLeaves(l.Root); got != 3 {
		t.Fatalf("expected 3 leaves, got %d", got)
	}
	sum := 0.0
	for _, child := range l.Root.Children {
		sum += child.Size
	}
	if sum != FullSize {
		t.Fatalf("row sizes must sum to %v exactly, got %v", FullSize, sum)
	}
	mustValidate(t, l)
}

func TestBuildSplitLayout(t *testing.T) {
	preset := &Preset{
		Name: "main-side",
		Panes: []PresetPane{
			{Min: 30},
			{Split: "horizontal", Size: "30%", Min: 15, Max: 50},
		},
	}
	l, err := BuildLayout(preset, "layout-side")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := CountLeaves(l.Root); got != 2 {
		t.Fatalf("expected 2 leaves, got %d", got)
	}
	first, second := l.Root.Children[0], l.Root.Children[1]
	if math.Abs(first.Size-70) > SizeEpsilon || math.Abs(second.Size-30) > SizeEpsilon {
		t.Fatalf("expected 70/30, got %v/%v", first.Size, second.Size)
	}
	if second.MinSize != 15 || second.MaxSize != 50 {
		t.Fatalf("expected clamps on the side pane, got %v/%v", second.MinSize, second.MaxSize)
	}
	mustValidate(t, l)
}

func TestBuildSplitLayoutInvalidDirection(t *testing.T) {
	preset := &Preset{
		Name:  "broken",
		Panes: []PresetPane{{}, {Split: "diagonal"}},
	}
	if _, err := BuildLayout(preset, "layout-broken"); err == nil {
		t.Fatalf("expected an error for an invalid split direction")
	}
}

func TestBuildEmptyPresetYieldsSingleLeaf(t *testing.T) {
	l, err := BuildLayout(&Preset{Name: "bare"}, "layout-bare")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !l.Root.IsLeaf() {
		t.Fatalf("expected a single leaf")
	}
	if l.ActivePaneID != l.Root.ID {
		t.Fatalf("expected the leaf active")
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"30%", 30},
		{"30", 30},
		{" 45 % ", 50}, // inner space is not a percent
		{"", 50},
		{"0", 50},
		{"100", 50},
		{"junk", 50},
	}
	for _, tc := range cases {
		if got := parsePercent(tc.raw); got != tc.want {
			t.Fatalf("parsePercent(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
