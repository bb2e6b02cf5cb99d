// Package redis implements the session store on Redis. Expiry is enforced
// twice: the key TTL reaps abandoned sessions, and the stored ExpiresAt is
// still checked by the auth service.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

const Prefix = "session:"

type Store struct {
	client *redis.Client
}

func NewStore(addr string) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Store{client: rdb}
}

// Ensure Store implements ports.SessionStore
var _ ports.SessionStore = (*Store)(nil)

func (s *Store) Create(ctx context.Context, session auth.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return s.client.Set(ctx, Prefix+session.Token, data, ttl).Err()
}

func (s *Store) Get(ctx context.Context, token string) (auth.Session, error) {
	data, err := s.client.Get(ctx, Prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Session{}, ports.ErrNotFound
		}
		return auth.Session{}, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return auth.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, Prefix+token).Err()
}
