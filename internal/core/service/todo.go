package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go-todo-app/internal/core/domain/todo"
	"go-todo-app/internal/core/ports"
)

var tracer = otel.Tracer("internal/core/service")

// ErrItemNotFound covers both a missing id and an item owned by someone else.
// The two cases are deliberately indistinguishable so item ids don't leak
// across accounts.
var ErrItemNotFound = errors.New("item not found")

type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

// List returns the user's items in insertion order.
func (s *TodoService) List(ctx context.Context, userID string) ([]todo.Item, error) {
	ctx, span := tracer.Start(ctx, "TodoService.List", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Add creates an item from the raw form title. A title that trims to empty is
// todo.ErrEmptyTitle and nothing is written.
func (s *TodoService) Add(ctx context.Context, userID, rawTitle string) (todo.Item, error) {
	ctx, span := tracer.Start(ctx, "TodoService.Add", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()

	title, err := todo.NormalizeTitle(rawTitle)
	if err != nil {
		return todo.Item{}, err
	}

	item := todo.Item{
		ID:        uuid.New().String(),
		Title:     title,
		Complete:  false,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		span.RecordError(err)
		return todo.Item{}, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		span.RecordError(err)
		return todo.Item{}, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.InfoContext(ctx, "item added", "item_id", item.ID, "user_id", userID)
	return item, nil
}

// Toggle flips the completion flag of one of the user's items.
func (s *TodoService) Toggle(ctx context.Context, id, userID string) (todo.Item, error) {
	ctx, span := tracer.Start(ctx, "TodoService.Toggle", trace.WithAttributes(
		attribute.String("item.id", id),
	))
	defer span.End()

	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return todo.Item{}, err
	}

	item.Complete = !item.Complete
	if err := s.repo.SetComplete(ctx, id, item.Complete); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return todo.Item{}, ErrItemNotFound
		}
		span.RecordError(err)
		return todo.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.InfoContext(ctx, "item toggled", "item_id", id, "complete", item.Complete)
	return item, nil
}

// Remove deletes one of the user's items.
func (s *TodoService) Remove(ctx context.Context, id, userID string) error {
	ctx, span := tracer.Start(ctx, "TodoService.Remove", trace.WithAttributes(
		attribute.String("item.id", id),
	))
	defer span.End()

	if _, err := s.ownedItem(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrItemNotFound
		}
		span.RecordError(err)
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.InfoContext(ctx, "item removed", "item_id", id, "user_id", userID)
	return nil
}

// ownedItem resolves an id and verifies ownership.
func (s *TodoService) ownedItem(ctx context.Context, id, userID string) (todo.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return todo.Item{}, ErrItemNotFound
		}
		return todo.Item{}, fmt.Errorf("failed to fetch item: %w", err)
	}
	if item.UserID != userID {
		return todo.Item{}, ErrItemNotFound
	}
	return item, nil
}
