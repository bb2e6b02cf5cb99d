// Package memory implements the storage ports in process memory, for unit
// tests and for local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/domain/todo"
	"go-todo-app/internal/core/ports"
)

// Store holds users and items behind one mutex.
type Store struct {
	mu    sync.Mutex
	users map[string]auth.User
	items map[string]todo.Item
	seq   int
	order map[string]int
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]auth.User),
		items: make(map[string]todo.Item),
		order: make(map[string]int),
	}
}

var (
	_ ports.UserRepository = (*Store)(nil)
	_ ports.TodoRepository = (*todoView)(nil)
)

// --- UserRepository ---

func (s *Store) Save(ctx context.Context, user auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ports.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, ports.ErrNotFound
}

func (s *Store) FindByID(ctx context.Context, id string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return auth.User{}, ports.ErrNotFound
	}
	return u, nil
}

// --- TodoRepository ---

// Todos returns the store as a ports.TodoRepository. The item methods live on
// a view type because both ports name their insert Save.
func (s *Store) Todos() ports.TodoRepository { return (*todoView)(s) }

type todoView Store

func (v *todoView) Save(ctx context.Context, item todo.Item) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	v.order[item.ID] = v.seq
	v.items[item.ID] = item
	return nil
}

func (v *todoView) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var items []todo.Item
	for _, item := range v.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return v.order[items[i].ID] < v.order[items[j].ID]
	})
	return items, nil
}

func (v *todoView) FindByID(ctx context.Context, id string) (todo.Item, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, ok := v.items[id]
	if !ok {
		return todo.Item{}, ports.ErrNotFound
	}
	return item, nil
}

func (v *todoView) SetComplete(ctx context.Context, id string, complete bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, ok := v.items[id]
	if !ok {
		return ports.ErrNotFound
	}
	item.Complete = complete
	v.items[id] = item
	return nil
}

func (v *todoView) Delete(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(v.items, id)
	delete(v.order, id)
	return nil
}
