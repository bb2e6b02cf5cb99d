package ports

import (
	"context"
	"errors"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/domain/todo"
)

// Storage-level sentinels. Adapters map driver-specific failures (pg unique
// violations, sqlite constraint errors, redis.Nil) onto these so the services
// can branch with errors.Is without knowing the backend.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines storage for users.
type UserRepository interface {
	// Save inserts a user; a taken email yields ErrDuplicate.
	Save(ctx context.Context, user auth.User) error
	FindByEmail(ctx context.Context, email string) (auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// TodoRepository defines storage for to-do items.
type TodoRepository interface {
	// Save inserts a new item.
	Save(ctx context.Context, item todo.Item) error

	// ListByUser returns the user's items in insertion order.
	ListByUser(ctx context.Context, userID string) ([]todo.Item, error)

	// FindByID retrieves an item regardless of owner; ownership is the
	// service's concern.
	FindByID(ctx context.Context, id string) (todo.Item, error)

	// SetComplete stores a new completion flag; ErrNotFound if the id is gone.
	SetComplete(ctx context.Context, id string, complete bool) error

	// Delete removes an item; ErrNotFound if the id is gone.
	Delete(ctx context.Context, id string) error
}
