package layout

// History keeps cloned layouts for undo/redo. Snapshots are recorded by the
// engine before every structural change.
type History struct {
	Past   []*Layout
	Future []*Layout
	Limit  int
}

func (h *History) Record(snapshot *Layout) {
	if h == nil || snapshot == nil {
		return
	}
	h.Past = append(h.Past, snapshot)
	h.Future = nil
	if h.Limit > 0 && len(h.Past) > h.Limit {
		h.Past = h.Past[len(h.Past)-h.Limit:]
	}
}

func (h *History) Undo(current *Layout) (*Layout, bool) {
	if h == nil || len(h.Past) == 0 {
		return nil, false
	}
	last := h.Past[len(h.Past)-1]
	h.Past = h.Past[:len(h.Past)-1]
	if current != nil {
		h.Future = append(h.Future, current.Clone())
	}
	return last.Clone(), true
}

func (h *History) Redo(current *Layout) (*Layout, bool) {
	if h == nil || len(h.Future) == 0 {
		return nil, false
	}
	next := h.Future[len(h.Future)-1]
	h.Future = h.Future[:len(h.Future)-1]
	if current != nil {
		h.Past = append(h.Past, current.Clone())
	}
	return next.Clone(), true
}

func (h *History) Clear() {
	if h == nil {
		return
	}
	h.Past = nil
	h.Future = nil
}
