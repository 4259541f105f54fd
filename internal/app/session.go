package app

import (
	"context"
	"sync"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

// SessionStore persists the signed-in user between runs.
type SessionStore interface {
	Load(ctx context.Context) (*model.User, error)
	Save(ctx context.Context, user model.User) error
	Clear(ctx context.Context) error
}

// Session is the explicit holder of "who is logged in". It starts empty,
// is filled by Restore or Login and emptied by Logout.
type Session struct {
	store SessionStore

	mu   sync.RWMutex
	user *model.User
}

func NewSession(store SessionStore) *Session {
	return &Session{store: store}
}

// Restore loads the persisted user, if any.
func (s *Session) Restore(ctx context.Context) (*model.User, error) {
	user, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Login makes user current and persists it. The in-memory user is set even
// when persisting fails.
func (s *Session) Login(ctx context.Context, user model.User) error {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return s.store.Save(ctx, user)
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.store.Clear(ctx)
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}
