package gallery

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions maps session ids to their galleries.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Gallery
	now      func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Gallery), now: time.Now}
}

// Create starts an empty session and returns its id.
func (s *Sessions) Create() (string, *Gallery) {
	id := uuid.NewString()
	g := New()
	s.mu.Lock()
	s.sessions[id] = g
	s.mu.Unlock()
	return id, g
}

// Get returns the gallery for id or ErrNotFound.
func (s *Sessions) Get(id string) (*Gallery, error) {
	s.mu.RLock()
	g, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than olderThan and returns how many
// were removed. Sessions with an operation in flight are kept.
func (s *Sessions) Sweep(olderThan time.Duration) int {
	cutoff := s.now().Add(-olderThan)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, g := range s.sessions {
		if g.expired(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
