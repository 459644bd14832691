package layout

import (
	"strings"
	"sync"
)

// Manager owns the engines for a set of layouts, keyed by layout id. All
// mutation funnels through one mutex so concurrent input sources (drag
// adapters, keyboard shortcuts, programmatic calls) apply as a strictly
// ordered sequence per layout.
type Manager struct {
	mu       sync.Mutex
	engines  map[string]*Engine
	onChange []func(*Layout)
}

func NewManager() *Manager {
	return &Manager{engines: make(map[string]*Engine)}
}

// OnChange registers a hook invoked after every successful mutation of any
// managed layout. Typically wired to the store's autosaver.
func (m *Manager) OnChange(fn func(*Layout)) {
	if m == nil || fn == nil {
		return
	}
	m.mu.Lock()
	m.onChange = append(m.onChange, fn)
	for _, engine := range m.engines {
		engine.OnChange(fn)
	}
	m.mu.Unlock()
}

// Create makes a new layout with a single root leaf and registers it.
// An existing layout with the same id is replaced.
func (m *Manager) Create(layoutID, sessionID string) *Layout {
	layout := New(layoutID, sessionID)
	m.Adopt(layout)
	return layout
}

// Adopt registers an existing layout (e.g. one restored from the store).
func (m *Manager) Adopt(layout *Layout) {
	if m == nil || layout == nil {
		return
	}
	engine := NewEngine(layout)
	m.mu.Lock()
	for _, fn := range m.onChange {
		engine.OnChange(fn)
	}
	m.engines[layout.ID] = engine
	m.mu.Unlock()
}

// Layout returns the live layout for an id, or nil.
func (m *Manager) Layout(layoutID string) *Layout {
	engine := m.engine(layoutID)
	if engine == nil {
		return nil
	}
	return engine.Layout
}

// Remove drops a layout from the manager (e.g. when its workspace is
// deleted). The store entry is the caller's problem.
func (m *Manager) Remove(layoutID string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.engines, strings.TrimSpace(layoutID))
	m.mu.Unlock()
}

// SplitPane splits a leaf in two along the given direction.
func (m *Manager) SplitPane(layoutID, paneID string, dir Direction, ratio float64) (Result, error) {
	return m.apply(layoutID, SplitOp{PaneID: paneID, Direction: dir, Ratio: ratio})
}

// RemovePane removes a pane, collapsing its parent if a single sibling
// survives.
func (m *Manager) RemovePane(layoutID, paneID string) (Result, error) {
	return m.apply(layoutID, CloseOp{PaneID: paneID})
}

// ResizePane adjusts a pane by deltaPercent, trading size with its adjacent
// sibling.
func (m *Manager) ResizePane(layoutID, paneID string, deltaPercent float64) (Result, error) {
	return m.apply(layoutID, ResizeOp{PaneID: paneID, Delta: deltaPercent})
}

// SetActivePane moves focus to an existing leaf.
func (m *Manager) SetActivePane(layoutID, paneID string) (Result, error) {
	return m.apply(layoutID, ActivateOp{PaneID: paneID})
}

// ResetSizes equalizes sibling sizes throughout the layout.
func (m *Manager) ResetSizes(layoutID string) (Result, error) {
	return m.apply(layoutID, ResetSizesOp{})
}

// Undo reverts the last structural change, if any.
func (m *Manager) Undo(layoutID string) bool {
	return m.timeTravel(layoutID, func(e *Engine) (*Layout, bool) {
		return e.History.Undo(e.Layout)
	})
}

// Redo reapplies the last undone change, if any.
func (m *Manager) Redo(layoutID string) bool {
	return m.timeTravel(layoutID, func(e *Engine) (*Layout, bool) {
		return e.History.Redo(e.Layout)
	})
}

func (m *Manager) timeTravel(layoutID string, step func(*Engine) (*Layout, bool)) bool {
	engine := m.engine(layoutID)
	if engine == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	restored, ok := step(engine)
	if !ok {
		return false
	}
	engine.Layout.Root = restored.Root
	engine.Layout.ActivePaneID = restored.ActivePaneID
	for _, fn := range engine.onChange {
		fn(engine.Layout)
	}
	return true
}

func (m *Manager) apply(layoutID string, op Op) (Result, error) {
	engine := m.engine(layoutID)
	if engine == nil {
		return Result{}, ErrPaneNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return engine.Apply(op)
}

func (m *Manager) engine(layoutID string) *Engine {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engines[strings.TrimSpace(layoutID)]
}
