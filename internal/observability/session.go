package observability

import (
	"context"
	"errors"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

// InstrumentedSessionStore is a decorator that counts session lookups by
// outcome.
type InstrumentedSessionStore struct {
	inner ports.SessionStore
}

// NewInstrumentedSessionStore creates a new instrumented session store wrapper.
func NewInstrumentedSessionStore(inner ports.SessionStore) *InstrumentedSessionStore {
	return &InstrumentedSessionStore{inner: inner}
}

var _ ports.SessionStore = (*InstrumentedSessionStore)(nil)

func (s *InstrumentedSessionStore) Create(ctx context.Context, session auth.Session) error {
	return s.inner.Create(ctx, session)
}

func (s *InstrumentedSessionStore) Get(ctx context.Context, token string) (auth.Session, error) {
	session, err := s.inner.Get(ctx, token)
	switch {
	case err == nil:
		sessionLookups.WithLabelValues("hit").Inc()
	case errors.Is(err, ports.ErrNotFound):
		sessionLookups.WithLabelValues("miss").Inc()
	default:
		sessionLookups.WithLabelValues("error").Inc()
	}
	return session, err
}

func (s *InstrumentedSessionStore) Delete(ctx context.Context, token string) error {
	return s.inner.Delete(ctx, token)
}
