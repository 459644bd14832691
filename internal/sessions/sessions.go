// Package sessions tracks the terminal sessions attached to panes. The
// layout engine only stores opaque session ids; this package owns their
// lifecycle and keeps layouts honest about which ids still exist.
package sessions

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/paneweave/paneweave/internal/layout"
)

var ErrSessionNotFound = errors.New("sessions: session not found")

// Provider answers whether a session id refers to a live session. The
// terminal backend implements this; tests use the in-memory Registry.
type Provider interface {
	Exists(sessionID string) bool
}

// Session is one live terminal session.
type Session struct {
	ID      string
	Title   string
	Command string
}

// Registry is an in-memory session provider.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Open creates a session and returns its id.
func (r *Registry) Open(title, command string) Session {
	session := Session{
		ID:      "sess-" + uuid.NewString(),
		Title:   title,
		Command: command,
	}
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

// Close removes a session.
func (r *Registry) Close(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// Get returns a session by id.
func (r *Registry) Get(sessionID string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Exists implements Provider.
func (r *Registry) Exists(sessionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[sessionID]
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reconcile clears session ids that the provider no longer knows, e.g.
// after restoring a layout across a restart. The pane stays in place as an
// empty pane. Returns the ids that were cleared.
func Reconcile(l *layout.Layout, provider Provider) []string {
	if l == nil || l.Root == nil || provider == nil {
		return nil
	}
	var stale []string
	layout.Walk(l.Root, func(n *layout.Node) {
		if !n.IsLeaf() || n.SessionID == "" {
			return
		}
		if !provider.Exists(n.SessionID) {
			stale = append(stale, n.SessionID)
			n.SessionID = ""
		}
	})
	return stale
}
