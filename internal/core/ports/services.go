package ports

import (
	"context"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/domain/todo"
)

// AuthService defines registration, login and session resolution.
type AuthService interface {
	// Register creates the account and immediately starts a session.
	Register(ctx context.Context, email, password string) (token string, err error)

	// Login verifies credentials and starts a session.
	Login(ctx context.Context, email, password string) (token string, err error)

	// Logout invalidates a session token. Unknown tokens are not an error.
	Logout(ctx context.Context, token string) error

	// Resolve maps a session token to its user. Expired or unknown sessions
	// yield ErrSessionInvalid from the service package.
	Resolve(ctx context.Context, token string) (auth.User, error)
}

// TodoService defines the per-user item operations.
type TodoService interface {
	List(ctx context.Context, userID string) ([]todo.Item, error)
	Add(ctx context.Context, userID, rawTitle string) (todo.Item, error)
	Toggle(ctx context.Context, id, userID string) (todo.Item, error)
	Remove(ctx context.Context, id, userID string) error
}
