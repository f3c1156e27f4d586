package workspace

import (
	"sort"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/google/uuid"
)

// Session binds a signed-in user to an isolated workspace. Values handed out
// by the registry are copies; LastActivity is as of the call that returned it.
type Session struct {
	ID           string
	User         User
	Workspace    *Workspace
	CreatedAt    time.Time
	LastActivity time.Time
}

// Registry tracks live sessions by id. Each session owns its workspace;
// nothing is shared between sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create registers a new session for user over ws.
func (r *Registry) Create(user User, ws *Workspace) *Session {
	now := r.now()
	s := &Session{
		ID:           uuid.NewString(),
		User:         user,
		Workspace:    ws,
		CreatedAt:    now,
		LastActivity: now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	out := *s
	return &out
}

// Get returns the session and marks it active.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.LastActivity = r.now()
	out := *s
	return &out, true
}

// Rekey moves a session to a new id, keeping its user and workspace.
func (r *Registry) Rekey(oldID, newID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[oldID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	if _, taken := r.sessions[newID]; taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "session id already in use")
	}

	moved := *s
	moved.ID = newID
	moved.LastActivity = r.now()
	delete(r.sessions, oldID)
	r.sessions[newID] = &moved
	out := moved
	return &out, nil
}

// Delete drops the session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Sweep evicts sessions whose last activity is more than idle before now and
// returns their ids, sorted.
func (r *Registry) Sweep(now time.Time, idle time.Duration) []string {
	if idle <= 0 {
		return nil
	}
	cutoff := now.Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, s := range r.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)
	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
