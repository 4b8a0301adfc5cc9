// Package session keeps one engine.Run per API client so scans can be
// stepped across requests. Each session's state is independent; operations
// on one session are serialized.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kmacinski/slidewin/internal/engine"
)

var (
	// ErrNotFound indicates an unknown or expired session id.
	ErrNotFound = errors.New("session: not found")
	// ErrLimit indicates the store is full.
	ErrLimit = errors.New("session: too many active sessions")
)

// Session is one client's scan.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	run      *engine.Run
	lastUsed time.Time
}

// Info is a point-in-time view of a session.
type Info struct {
	ID        string           `json:"id"`
	Algorithm engine.Algorithm `json:"algorithm"`
	Total     int              `json:"total"`
	Position  int              `json:"position"`
	Done      bool             `json:"done"`
	// Best is the longest-unique window found so far.
	Best *engine.Span `json:"best,omitempty"`
}

// Store holds active sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	limit    int
	now      func() time.Time
}

// NewStore creates a store that accepts at most limit sessions.
func NewStore(limit int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		limit:    limit,
		now:      time.Now,
	}
}

// Create validates the configuration and registers a new session.
func (s *Store) Create(seq engine.Sequence, spec engine.WindowSpec) (Info, error) {
	run, err := engine.NewRun(seq, spec)
	if err != nil {
		return Info{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.sessions) >= s.limit {
		return Info{}, ErrLimit
	}

	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		Created:  now,
		run:      run,
		lastUsed: now,
	}
	s.sessions[sess.ID] = sess
	return sess.info(), nil
}

func (s *Store) get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Advance emits the session's next step. A failed step leaves the
// session where it was.
func (s *Store) Advance(id string) (engine.StepResult, Info, error) {
	sess, err := s.get(id)
	if err != nil {
		return engine.StepResult{}, Info{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsed = s.now()
	res, err := sess.run.Next()
	return res, sess.info(), err
}

// Reset rewinds the session with a fresh scan state.
func (s *Store) Reset(id string) (Info, error) {
	sess, err := s.get(id)
	if err != nil {
		return Info{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsed = s.now()
	sess.run.Reset()
	return sess.info(), nil
}

// Step computes step i of the session's run without moving it.
func (s *Store) Step(id string, i int) (engine.StepResult, error) {
	sess, err := s.get(id)
	if err != nil {
		return engine.StepResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsed = s.now()
	return sess.run.Step(i)
}

// Get returns the session's current position.
func (s *Store) Get(id string) (Info, error) {
	sess, err := s.get(id)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.info(), nil
}

// Delete drops a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns how many
// were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (sess *Session) info() Info {
	info := Info{
		ID:        sess.ID,
		Algorithm: sess.run.Spec().Algorithm,
		Total:     sess.run.Total(),
		Position:  sess.run.Position(),
		Done:      sess.run.Done(),
	}
	if best, ok := sess.run.State().BestSpan(); ok {
		info.Best = &best
	}
	return info
}
