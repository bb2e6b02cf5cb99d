// Package memory implements an in-process session store for unit tests and
// local development. Sessions do not survive a restart.
package memory

import (
	"context"
	"sync"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]auth.Session)}
}

var _ ports.SessionStore = (*Store)(nil)

func (s *Store) Create(ctx context.Context, session auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Store) Get(ctx context.Context, token string) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return auth.Session{}, ports.ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
