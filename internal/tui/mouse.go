package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/paneweave/paneweave/internal/layout"
	"github.com/paneweave/paneweave/internal/render"
)

// dividerHit identifies the sibling boundary under the cursor.
type dividerHit struct {
	paneID string // child before the divider
	extent int    // parent container extent along the drag axis, in cells
	pos    int    // cursor position along the drag axis
	isX    bool
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		hit, ok := m.dividerAt(msg.X, msg.Y)
		if !ok {
			// Plain click focuses the pane under the cursor.
			if id, ok := render.PaneAt(m.layout(), m.width, m.canvasHeight(), msg.X, msg.Y); ok {
				m.apply(func() (layout.Result, error) {
					return m.manager.SetActivePane(m.layoutID, id)
				})
			}
			return m, nil
		}
		if err := m.tracker.Begin(m.layoutID, hit.paneID, hit.extent, hit.pos); err != nil {
			m.status = err.Error()
		}
		return m, nil
	case tea.MouseActionMotion:
		if !m.tracker.Dragging() {
			return m, nil
		}
		pos := msg.Y
		if m.dragAxisX {
			pos = msg.X
		}
		if _, err := m.tracker.Move(pos); err != nil {
			m.status = err.Error()
		}
		return m, nil
	case tea.MouseActionRelease:
		m.tracker.End()
		return m, nil
	}
	return m, nil
}

// dividerAt finds a draggable boundary at the cursor: the last border
// column (or row) of a pane that has a following sibling.
func (m *Model) dividerAt(x, y int) (dividerHit, bool) {
	l := m.layout()
	if l == nil {
		return dividerHit{}, false
	}
	all := render.AllRects(l, m.width, m.canvasHeight())

	var hit dividerHit
	found := false
	layout.Walk(l.Root, func(node *layout.Node) {
		if found || node.Parent == nil {
			return
		}
		parent := node.Parent
		if parent.Children[len(parent.Children)-1] == node {
			return
		}
		rect, ok := all[node.ID]
		if !ok {
			return
		}
		parentRect := all[parent.ID]
		if parent.Direction == layout.DirectionHorizontal {
			edge := rect.X + rect.W
			if (x == edge-1 || x == edge) && y >= rect.Y && y < rect.Y+rect.H {
				hit = dividerHit{paneID: node.ID, extent: parentRect.W, pos: x, isX: true}
				found = true
			}
			return
		}
		edge := rect.Y + rect.H
		if (y == edge-1 || y == edge) && x >= rect.X && x < rect.X+rect.W {
			hit = dividerHit{paneID: node.ID, extent: parentRect.H, pos: y, isX: false}
			found = true
		}
	})
	if found {
		m.dragAxisX = hit.isX
	}
	return hit, found
}
