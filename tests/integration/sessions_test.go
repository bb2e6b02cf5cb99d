package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tc_redis "github.com/testcontainers/testcontainers-go/modules/redis"

	sessionredis "go-todo-app/internal/adapter/session/redis"
	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

func TestRedisSessionStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	redisContainer, err := tc_redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis: %v", err)
	}
	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate redis: %v", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}
	store := sessionredis.NewStore(strings.TrimPrefix(redisConnStr, "redis://"))

	newSession := func(token string, ttl time.Duration) auth.Session {
		now := time.Now().UTC()
		return auth.Session{
			Token:     token,
			UserID:    "u1",
			ExpiresAt: now.Add(ttl),
			CreatedAt: now,
		}
	}

	t.Run("Create And Get", func(t *testing.T) {
		session := newSession("tok-roundtrip", time.Hour)
		if err := store.Create(ctx, session); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		got, err := store.Get(ctx, "tok-roundtrip")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.UserID != session.UserID || got.Token != session.Token {
			t.Fatalf("session mismatch: %+v vs %+v", got, session)
		}
	})

	t.Run("Unknown Token", func(t *testing.T) {
		_, err := store.Get(ctx, "tok-missing")
		if !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete Removes Session", func(t *testing.T) {
		if err := store.Create(ctx, newSession("tok-delete", time.Hour)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := store.Delete(ctx, "tok-delete"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Get(ctx, "tok-delete"); !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Key TTL Reaps Session", func(t *testing.T) {
		if err := store.Create(ctx, newSession("tok-short", time.Second)); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		time.Sleep(1500 * time.Millisecond)

		if _, err := store.Get(ctx, "tok-short"); !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after TTL, got %v", err)
		}
	})

	t.Run("Rejects Already Expired Session", func(t *testing.T) {
		if err := store.Create(ctx, newSession("tok-expired", -time.Minute)); err == nil {
			t.Fatal("expected error creating an already expired session")
		}
	})
}
