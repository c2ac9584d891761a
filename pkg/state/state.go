package state

import (
	"sync"
	"time"

	"github.com/korjavin/fridgechef/pkg/match"
)

// Mode is how free text from a user is interpreted
type Mode string

const (
	// ModeNormal adds each message as a single product
	ModeNormal Mode = "normal"
	// ModeAddingBulk splits each message into several products
	ModeAddingBulk Mode = "adding_bulk"
)

// Session is the per-user view state between interactions: the last ranked
// list, the active refine filter and the recipe currently open.
type Session struct {
	Mode      Mode
	Results   []match.Result
	Filter    match.Filter
	Selected  int64
	Opened    bool // a recipe is open and Selected holds its id
	Timestamp time.Time
}

// Refined returns the last ranked list narrowed by the active filter
func (s Session) Refined() []match.Result {
	return match.Refine(s.Results, s.Filter)
}

// Manager keeps sessions in memory and forgets idle ones
type Manager struct {
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

// New creates a new session manager. Sessions idle for longer than ttl are
// reset to empty.
func New(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for a scope, or an empty one
func (m *Manager) Get(scope string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(scope)
}

func (m *Manager) get(scope string) Session {
	s, ok := m.sessions[scope]
	if !ok {
		return Session{Mode: ModeNormal}
	}
	if m.now().Sub(s.Timestamp) > m.ttl {
		delete(m.sessions, scope)
		return Session{Mode: ModeNormal}
	}
	return s
}

// Update applies fn to the scope's session and stores the result
func (m *Manager) Update(scope string, fn func(*Session)) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(scope)
	fn(&s)
	s.Timestamp = m.now()
	m.sessions[scope] = s
	return s
}

// SetMode sets the input mode for a scope
func (m *Manager) SetMode(scope string, mode Mode) {
	m.Update(scope, func(s *Session) { s.Mode = mode })
}

// Clear forgets the session for a scope
func (m *Manager) Clear(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, scope)
}

// Sweep drops every session idle for longer than the ttl and returns how
// many were dropped
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	dropped := 0
	for scope, s := range m.sessions {
		if now.Sub(s.Timestamp) > m.ttl {
			delete(m.sessions, scope)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of sessions held, expired or not
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
