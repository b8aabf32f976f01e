// Package state holds the in-memory observable containers mirroring the
// persisted session and feed. Containers are disposable caches: they are
// populated from the services at startup and kept in sync only through
// their own mutating methods.
package state

import (
	"context"
	"sync"

	"github.com/avoronin/MiniFeed/internal/models"
)

// SessionStore defines the persistence operations the session container
// needs from the user directory.
type SessionStore interface {
	ClearSession(ctx context.Context) error
}

// Session is the observable container for the current session user.
// It is injected into whatever layer needs current-user context rather
// than living as a global.
type Session struct {
	store SessionStore

	mu   sync.Mutex
	user *models.SessionUser
	subs []func(*models.SessionUser)
}

// NewSession constructs an empty session container over the given store.
func NewSession(store SessionStore) *Session {
	return &Session{store: store}
}

// Set replaces the in-memory session user and notifies subscribers.
func (s *Session) Set(user models.SessionUser) {
	s.mu.Lock()
	s.user = &user
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(&user)
	}
}

// Current returns the in-memory session user; ok=false when logged out.
func (s *Session) Current() (models.SessionUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.SessionUser{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a session user is set.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Logout clears the persisted session pointer, then resets the in-memory
// value and notifies subscribers. If clearing storage fails, memory is
// left untouched so the two never diverge.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
	return nil
}

// Subscribe registers fn to run after every session change. fn receives
// the new user, or nil on logout.
func (s *Session) Subscribe(fn func(*models.SessionUser)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
