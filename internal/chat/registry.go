package chat

import (
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Registry tracks every live session and the account names bound to them.
// It has no locks: only the reactor goroutine may touch it.
type Registry struct {
	sessions map[uuid.UUID]*Session
	names    map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		names:    make(map[string]*Session),
	}
}

// Add tracks a freshly accepted, not yet authenticated session.
func (r *Registry) Add(s *Session) {
	r.sessions[s.ID] = s
}

// Register binds name to s and authenticates it. Binding the same pair again
// is a no-op.
func (r *Registry) Register(name string, s *Session) error {
	if existing, ok := r.names[name]; ok {
		if existing != s {
			return ErrNameTaken
		}
		return nil
	}
	if s.Name != "" {
		return ErrAlreadyBound
	}
	s.Name = name
	s.State = StateAuthenticated
	r.names[name] = s
	r.sessions[s.ID] = s
	return nil
}

// release undoes Register while keeping the session alive and connecting.
func (r *Registry) release(s *Session) {
	if s.Name != "" && r.names[s.Name] == s {
		delete(r.names, s.Name)
	}
	s.Name = ""
	s.State = StateConnecting
}

// Unregister removes the name and its session and marks the session closed.
// Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	s, ok := r.names[name]
	if !ok {
		return
	}
	delete(r.names, name)
	delete(r.sessions, s.ID)
	s.State = StateClosed
}

// Drop removes s whether or not it is authenticated.
func (r *Registry) Drop(s *Session) {
	if s.Name != "" && r.names[s.Name] == s {
		r.Unregister(s.Name)
		return
	}
	delete(r.sessions, s.ID)
	s.State = StateClosed
}

func (r *Registry) Lookup(name string) (*Session, bool) {
	s, ok := r.names[name]
	return s, ok
}

// All returns the live sessions in no particular order.
func (r *Registry) All() []*Session {
	return lo.Values(r.sessions)
}

// Names returns the bound account names, sorted.
func (r *Registry) Names() []string {
	names := lo.Keys(r.names)
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.sessions)
}

func (r *Registry) AuthenticatedLen() int {
	return len(r.names)
}
