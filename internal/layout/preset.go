package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PresetPane defines one pane within a preset. Every pane after the first
// splits the previously added pane along Split, taking Size percent of it.
type PresetPane struct {
	Split string `yaml:"split,omitempty"` // "horizontal" or "vertical"
	Size  string `yaml:"size,omitempty"`  // e.g. "30%", "50"
	Min   float64 `yaml:"min,omitempty"`
	Max   float64 `yaml:"max,omitempty"`
}

// Preset is a named starting layout. Either Grid or Panes is set.
type Preset struct {
	Name        string       `yaml:"name,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Grid        string       `yaml:"grid,omitempty"` // e.g. "2x2"
	Panes       []PresetPane `yaml:"panes,omitempty"`
}

// Grid describes a rows-by-columns arrangement.
type Grid struct {
	Rows    int
	Columns int
}

func (g Grid) Panes() int { return g.Rows * g.Columns }

// ParseGrid parses a "RxC" grid spec such as "2x3".
func ParseGrid(raw string) (Grid, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(raw)), "x")
	if len(parts) != 2 {
		return Grid{}, fmt.Errorf("layout: invalid grid %q", raw)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || rows <= 0 {
		return Grid{}, fmt.Errorf("layout: invalid grid rows %q", raw)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || cols <= 0 {
		return Grid{}, fmt.Errorf("layout: invalid grid columns %q", raw)
	}
	return Grid{Rows: rows, Columns: cols}, nil
}

// BuildLayout constructs a layout from a preset. Grid presets produce n-ary
// splits directly; pane-list presets replay engine splits so the invariants
// hold by construction either way.
func BuildLayout(preset *Preset, layoutID string) (*Layout, error) {
	if preset == nil {
		return nil, errors.New("layout: preset is nil")
	}
	if strings.TrimSpace(preset.Grid) != "" {
		return buildGridLayout(preset, layoutID)
	}
	return buildSplitLayout(preset, layoutID)
}

func buildGridLayout(preset *Preset, layoutID string) (*Layout, error) {
	grid, err := ParseGrid(preset.Grid)
	if err != nil {
		return nil, err
	}

	buildRow := func(height float64) *Node {
		if grid.Columns == 1 {
			return &Node{ID: NewPaneID(), Size: height}
		}
		row := &Node{ID: NewPaneID(), Size: height, Direction: DirectionHorizontal}
		for c := 0; c < grid.Columns; c++ {
			leaf := &Node{ID: NewPaneID(), Size: FullSize / float64(grid.Columns), Parent: row}
			row.Children = append(row.Children, leaf)
		}
		renormalize(row.Children)
		return row
	}

	l := &Layout{ID: strings.TrimSpace(layoutID)}
	if grid.Rows == 1 {
		l.Root = buildRow(FullSize)
	} else {
		root := &Node{ID: NewPaneID(), Size: FullSize, Direction: DirectionVertical}
		for r := 0; r < grid.Rows; r++ {
			row := buildRow(FullSize / float64(grid.Rows))
			row.Parent = root
			root.Children = append(root.Children, row)
		}
		renormalize(root.Children)
		l.Root = root
	}
	l.ActivePaneID = FirstLeaf(l.Root).ID
	return l, nil
}

func buildSplitLayout(preset *Preset, layoutID string) (*Layout, error) {
	count := len(preset.Panes)
	if count == 0 {
		return New(layoutID, ""), nil
	}

	l := New(layoutID, "")
	engine := NewEngine(l)
	applyClamps(l.Root, preset.Panes[0])

	target := l.Root.ID
	for i := 1; i < count; i++ {
		def := preset.Panes[i]
		dir, err := ParseDirection(def.Split)
		if err != nil {
			return nil, err
		}
		if dir == DirectionNone {
			dir = DirectionHorizontal
		}
		ratio := 1 - parsePercent(def.Size)/FullSize
		result, err := engine.Apply(SplitOp{PaneID: target, Direction: dir, Ratio: ratio})
		if err != nil {
			return nil, fmt.Errorf("layout: build preset %q: %w", preset.Name, err)
		}
		applyClamps(l.FindPane(result.NewPaneIDs[1]), def)
		target = result.NewPaneIDs[1]
	}
	l.ActivePaneID = FirstLeaf(l.Root).ID
	return l, nil
}

func applyClamps(node *Node, def PresetPane) {
	if node == nil {
		return
	}
	if def.Min > 0 {
		node.MinSize = def.Min
	}
	if def.Max > 0 {
		node.MaxSize = def.Max
	}
}

func parsePercent(raw string) float64 {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if raw == "" {
		return 50
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil || pct <= 0 || pct >= 100 {
		return 50
	}
	return pct
}
