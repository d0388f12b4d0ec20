// Package session holds the in-memory registry of connected, authenticated
// players. It is the single source of truth for who is online and their
// last-known position.
package session

import (
	"sync"

	"github.com/flooyd/gameserver/internal/model"
)

// Registry is the authoritative set of live sessions, keyed by player id.
// Every operation is atomic with respect to the reads used for broadcast
// decisions, so a fan-out never observes a half-added session. Lookups
// return copies; callers never hold a reference to registry-owned state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[model.PlayerID]*model.Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[model.PlayerID]*model.Session),
	}
}

// Add inserts a session. Callers must not add a session whose id is already
// present; that is a protocol bug upstream, not a condition checked here.
func (r *Registry) Add(s model.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = &s
}

// Remove deletes the session for a player id. No-op if absent.
func (r *Registry) Remove(id model.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Find returns a copy of the session for a player id
func (r *Registry) Find(id model.PlayerID) (model.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return model.Session{}, false
	}
	return *s, true
}

// UpdatePosition records a player's latest position. Unknown ids are
// silently ignored; late or duplicate move events are tolerated by design.
// Returns whether the session was present.
func (r *Registry) UpdatePosition(id model.PlayerID, x, y float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	s.X = x
	s.Y = y
	return true
}

// All returns a snapshot of every live session, used to seed a newly
// joined client with the existing world state.
func (r *Registry) All() []model.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
