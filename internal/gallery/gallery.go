package gallery

import (
	"errors"
	"sync"
	"time"

	"mockupstudio/internal/domain"
)

// ErrNotFound is returned for unknown design or session ids.
var ErrNotFound = errors.New("gallery: not found")

// Gallery owns one session's state. All mutation goes through Dispatch.
type Gallery struct {
	mu       sync.Mutex
	state    State
	busy     map[string]struct{}
	lastSeen time.Time
}

func New() *Gallery {
	return &Gallery{
		state:    State{Status: StatusIdle},
		busy:     make(map[string]struct{}),
		lastSeen: time.Now(),
	}
}

// Dispatch reduces ev into the gallery and returns the resulting snapshot.
func (g *Gallery) Dispatch(ev Event) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Reduce(g.state, ev)
	g.lastSeen = time.Now()
	return g.state
}

// Snapshot returns the current state.
func (g *Gallery) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeen = time.Now()
	return g.state
}

// Design returns a copy of the design with id.
func (g *Gallery) Design(id string) (domain.Design, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	d, ok := g.state.Find(id)
	if !ok {
		return domain.Design{}, ErrNotFound
	}
	return d.Clone(), nil
}

// Acquire takes the exclusive lock for design id. It reports false when
// another operation already holds it. The returned func releases the lock.
func (g *Gallery) Acquire(id string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.busy[id]; held {
		return nil, false
	}
	g.busy[id] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, id)
			g.mu.Unlock()
		})
	}, true
}

// expired reports whether the gallery was last touched before cutoff and has
// no operation in flight.
func (g *Gallery) expired(cutoff time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.busy) == 0 && g.lastSeen.Before(cutoff)
}
