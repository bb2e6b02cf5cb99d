package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"go-todo-app/internal/core/domain/todo"
	"go-todo-app/internal/core/ports"
)

// TodoRepository implements ports.TodoRepository on SQLite.
type TodoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

var _ ports.TodoRepository = (*TodoRepository)(nil)

func (r *TodoRepository) Save(ctx context.Context, item todo.Item) error {
	query := `INSERT INTO todos (id, title, complete, user_id, created_at) VALUES (:id, :title, :complete, :user_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to insert item: %w", mapErr(err))
	}
	return nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	var items []todo.Item
	query := `SELECT id, title, complete, user_id, created_at FROM todos WHERE user_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	return items, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (todo.Item, error) {
	var item todo.Item
	err := r.db.GetContext(ctx, &item, `SELECT id, title, complete, user_id, created_at FROM todos WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Item{}, ports.ErrNotFound
		}
		return todo.Item{}, fmt.Errorf("failed to fetch item: %w", err)
	}
	return item, nil
}

func (r *TodoRepository) SetComplete(ctx context.Context, id string, complete bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE todos SET complete = ? WHERE id = ?`, complete, id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return checkAffected(res)
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}
