// Package render projects a pane tree's percentage sizes onto a cell grid.
// The engine stays in percent space; only this projection deals in cells.
package render

import (
	"github.com/paneweave/paneweave/internal/layout"
)

// Rect is a pane's placement in terminal cells.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell at (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Rects maps every leaf id to its cell rect within a width-by-height grid.
// Sibling extents are rounded down; the last sibling absorbs the remainder
// so the row or column always fills the container exactly.
func Rects(l *layout.Layout, width, height int) map[string]Rect {
	out := make(map[string]Rect)
	if l == nil || l.Root == nil || width <= 0 || height <= 0 {
		return out
	}
	walk(l.Root, Rect{X: 0, Y: 0, W: width, H: height}, out, false)
	return out
}

// AllRects is Rects including split nodes, used for divider hit testing
// where the parent container's extent matters.
func AllRects(l *layout.Layout, width, height int) map[string]Rect {
	out := make(map[string]Rect)
	if l == nil || l.Root == nil || width <= 0 || height <= 0 {
		return out
	}
	walk(l.Root, Rect{X: 0, Y: 0, W: width, H: height}, out, true)
	return out
}

// RectFor returns one node's cell rect within a width-by-height grid.
func RectFor(l *layout.Layout, paneID string, width, height int) (Rect, bool) {
	rect, ok := AllRects(l, width, height)[paneID]
	return rect, ok
}

// PaneAt returns the leaf id covering the cell at (x, y), if any.
func PaneAt(l *layout.Layout, width, height, x, y int) (string, bool) {
	for id, rect := range Rects(l, width, height) {
		if rect.Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

func walk(node *layout.Node, rect Rect, out map[string]Rect, includeSplits bool) {
	if node == nil || rect.Empty() {
		return
	}
	if node.IsLeaf() {
		out[node.ID] = rect
		return
	}
	if includeSplits {
		out[node.ID] = rect
	}

	if node.Direction == layout.DirectionHorizontal {
		widths := extents(node.Children, rect.W)
		x := rect.X
		for i, child := range node.Children {
			walk(child, Rect{X: x, Y: rect.Y, W: widths[i], H: rect.H}, out, includeSplits)
			x += widths[i]
		}
		return
	}

	heights := extents(node.Children, rect.H)
	y := rect.Y
	for i, child := range node.Children {
		walk(child, Rect{X: rect.X, Y: y, W: rect.W, H: heights[i]}, out, includeSplits)
		y += heights[i]
	}
}

func extents(children []*layout.Node, total int) []int {
	count := len(children)
	sizes := make([]int, count)
	if count == 0 || total <= 0 {
		return sizes
	}
	used := 0
	for i, child := range children {
		if i == count-1 {
			sizes[i] = total - used
			break
		}
		sizes[i] = int(float64(total) * child.Size / layout.FullSize)
		used += sizes[i]
	}
	return sizes
}
