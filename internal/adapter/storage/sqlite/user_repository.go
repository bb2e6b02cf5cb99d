package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Save(ctx context.Context, user auth.User) error {
	query := `INSERT INTO users (id, email, password_hash, created_at) VALUES (:id, :email, :password_hash, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if errors.Is(mapErr(err), ports.ErrDuplicate) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	var user auth.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, ports.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (auth.User, error) {
	var user auth.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, ports.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
