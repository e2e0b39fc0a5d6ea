// Package registry keeps the live sessions of one display surface,
// keyed by session ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/shared/id"
	"github.com/pathlane/dirview/internal/shared/types"
)

// FieldSelector extracts zero or more values from a session for Collect
// queries.
type FieldSelector func(*session.Session) []string

// Registry maps session IDs to live sessions for one surface.
type Registry struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*session.Session
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		sessions: make(map[id.SessionID]*session.Session),
	}
}

// Insert adds a session keyed by its ID. A duplicate key is a
// programming defect given the generation scheme.
func (r *Registry) Insert(s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return fmt.Errorf("insert %s: %w", s.ID, types.ErrDuplicateID)
	}
	r.sessions[s.ID] = s
	return nil
}

// Lookup returns the session for an ID. Absence is expected, not an
// error: callers must treat the false case as a normal outcome.
func (r *Registry) Lookup(sid id.SessionID) (*session.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sid]
	return s, ok
}

// Remove deletes a session entry. No-op when absent.
func (r *Registry) Remove(sid id.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sid)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// All returns the live sessions ordered by ID. ULIDs sort by creation
// time, so the order is stable and chronological.
func (r *Registry) All() []*session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Collect gathers a field's values from every live session, flattened,
// duplicates removed with first-seen order preserved.
func (r *Registry) Collect(selector FieldSelector) []string {
	return Dedupe(r.All(), selector)
}

// Dedupe flattens a selector across sessions, dropping duplicate values
// while preserving first-seen order.
func Dedupe(sessions []*session.Session, selector FieldSelector) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sessions {
		for _, v := range selector(s) {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
