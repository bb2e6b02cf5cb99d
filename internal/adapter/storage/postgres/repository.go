// Package postgres implements the storage ports on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-todo-app/internal/core/domain/todo"
	"go-todo-app/internal/core/ports"
)

// TodoRepository implements ports.TodoRepository using PostgreSQL.
type TodoRepository struct {
	db *pgxpool.Pool
}

// NewTodoRepository creates a new postgres todo repository.
func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

var _ ports.TodoRepository = (*TodoRepository)(nil)

func (r *TodoRepository) Save(ctx context.Context, item todo.Item) error {
	query := `
		INSERT INTO todos (id, title, complete, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Title, item.Complete, item.UserID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	query := `
		SELECT id, title, complete, user_id, created_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []todo.Item
	for rows.Next() {
		var item todo.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Complete, &item.UserID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (todo.Item, error) {
	query := `SELECT id, title, complete, user_id, created_at FROM todos WHERE id = $1`

	var item todo.Item
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Title, &item.Complete, &item.UserID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Item{}, ports.ErrNotFound
		}
		return todo.Item{}, fmt.Errorf("failed to fetch item: %w", err)
	}
	return item, nil
}

func (r *TodoRepository) SetComplete(ctx context.Context, id string, complete bool) error {
	query := `UPDATE todos SET complete = $1 WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, query, complete, id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM todos WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
