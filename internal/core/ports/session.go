package ports

import (
	"context"

	"go-todo-app/internal/core/domain/auth"
)

// SessionStore holds the server-side half of each login. Backends are
// expected to honor ExpiresAt as a TTL where they can (Redis does); Get on a
// missing or lapsed token returns ErrNotFound.
type SessionStore interface {
	Create(ctx context.Context, session auth.Session) error
	Get(ctx context.Context, token string) (auth.Session, error)
	Delete(ctx context.Context, token string) error
}
