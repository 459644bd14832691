// Package tui is an interactive playground for the layout engine: split,
// close, focus, and resize panes with the keyboard or the mouse, with every
// change autosaved through the layout store.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/paneweave/paneweave/internal/dragresize"
	"github.com/paneweave/paneweave/internal/layout"
	"github.com/paneweave/paneweave/internal/layoutstore"
	"github.com/paneweave/paneweave/internal/sessions"
)

const resizeStep = 5.0

// Options configures the demo model.
type Options struct {
	LayoutID string
	Manager  *layout.Manager
	Saver    *layoutstore.Autosaver
	Registry *sessions.Registry
}

// Model is the bubbletea model for the pane playground.
type Model struct {
	layoutID string
	manager  *layout.Manager
	saver    *layoutstore.Autosaver
	registry *sessions.Registry
	tracker  *dragresize.Tracker

	keys keyMap
	help help.Model

	width     int
	height    int
	status    string
	dragAxisX bool
}

func New(opts Options) *Model {
	m := &Model{
		layoutID: opts.LayoutID,
		manager:  opts.Manager,
		saver:    opts.Saver,
		registry: opts.Registry,
		tracker:  dragresize.NewTracker(opts.Manager),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) layout() *layout.Layout {
	return m.manager.Layout(m.layoutID)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	if l == nil {
		return m, tea.Quit
	}
	active := l.ActivePaneID
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.saver != nil {
			if err := m.saver.Close(context.Background()); err != nil {
				m.status = err.Error()
			}
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.SplitRight):
		m.split(active, layout.DirectionHorizontal)
	case key.Matches(msg, m.keys.SplitDown):
		m.split(active, layout.DirectionVertical)
	case key.Matches(msg, m.keys.Close):
		m.apply(func() (layout.Result, error) {
			return m.manager.RemovePane(m.layoutID, active)
		})
	case key.Matches(msg, m.keys.NextPane):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevPane):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Grow):
		m.apply(func() (layout.Result, error) {
			return m.manager.ResizePane(m.layoutID, active, resizeStep)
		})
	case key.Matches(msg, m.keys.Shrink):
		m.apply(func() (layout.Result, error) {
			return m.manager.ResizePane(m.layoutID, active, -resizeStep)
		})
	case key.Matches(msg, m.keys.Equalize):
		m.apply(func() (layout.Result, error) {
			return m.manager.ResetSizes(m.layoutID)
		})
	case key.Matches(msg, m.keys.Undo):
		m.manager.Undo(m.layoutID)
	case key.Matches(msg, m.keys.Redo):
		m.manager.Redo(m.layoutID)
	}
	return m, nil
}

func (m *Model) split(paneID string, dir layout.Direction) {
	m.apply(func() (layout.Result, error) {
		result, err := m.manager.SplitPane(m.layoutID, paneID, dir, 0.5)
		if err != nil {
			return result, err
		}
		// Attach a fresh session to the empty half so the playground
		// behaves like a real client would.
		if m.registry != nil && len(result.NewPaneIDs) == 2 {
			session := m.registry.Open("pane", "")
			if node := m.layout().FindPane(result.NewPaneIDs[1]); node != nil {
				node.SessionID = session.ID
				if m.saver != nil {
					m.saver.Notify(m.layout())
				}
			}
		}
		return result, nil
	})
}

func (m *Model) apply(op func() (layout.Result, error)) {
	if _, err := op(); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) cycleFocus(step int) {
	l := m.layout()
	leaves := layout.Leaves(l.Root)
	if len(leaves) == 0 {
		return
	}
	idx := 0
	for i, leaf := range leaves {
		if leaf.ID == l.ActivePaneID {
			idx = i
			break
		}
	}
	next := (idx + step + len(leaves)) % len(leaves)
	m.apply(func() (layout.Result, error) {
		return m.manager.SetActivePane(m.layoutID, leaves[next].ID)
	})
}
