package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (auth.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.User), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session auth.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (auth.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newAuthService(users *MockUserRepository, sessions *MockSessionStore) *AuthService {
	return NewAuthService(users, sessions, 24*time.Hour, slog.Default())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		users.On("Save", mock.Anything, mock.MatchedBy(func(u auth.User) bool {
			return u.Email == "test@example.com" && u.ID != "" && u.PasswordHash != ""
		})).Return(nil)
		sessions.On("Create", mock.Anything, mock.MatchedBy(func(s auth.Session) bool {
			return s.Token != "" && s.UserID != "" && s.ExpiresAt.After(time.Now())
		})).Return(nil)

		token, err := svc.Register(context.Background(), " Test@Example.com ", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("password is not stored in the clear", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		var saved auth.User
		users.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(auth.User)
		}).Return(nil)
		sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Register(context.Background(), "test@example.com", "password123")
		assert.NoError(t, err)
		assert.NotEqual(t, "password123", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		users.On("Save", mock.Anything, mock.Anything).Return(ports.ErrDuplicate)

		token, err := svc.Register(context.Background(), "test@example.com", "password123")
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.Empty(t, token)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repo error", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		users.On("Save", mock.Anything, mock.Anything).Return(errors.New("db error"))

		_, err := svc.Register(context.Background(), "test@example.com", "password123")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	password := "password123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := auth.User{ID: "user1", Email: "test@example.com", PasswordHash: string(hashed)}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
		sessions.On("Create", mock.Anything, mock.MatchedBy(func(s auth.Session) bool {
			return s.UserID == "user1" && s.Token != ""
		})).Return(nil)

		token, err := svc.Login(context.Background(), "Test@Example.com", password)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		sessions.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		users.On("FindByEmail", mock.Anything, "unknown@example.com").Return(auth.User{}, ports.ErrNotFound)

		token, err := svc.Login(context.Background(), "unknown@example.com", password)
		assert.ErrorIs(t, err, ErrUnknownEmail)
		assert.Empty(t, token)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

		token, err := svc.Login(context.Background(), "test@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Empty(t, token)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed stored digest fails like a wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		corrupt := auth.User{ID: "user1", Email: "test@example.com", PasswordHash: "not-a-bcrypt-digest"}
		users.On("FindByEmail", mock.Anything, "test@example.com").Return(corrupt, nil)

		token, err := svc.Login(context.Background(), "test@example.com", password)
		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Empty(t, token)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Resolve(t *testing.T) {
	user := auth.User{ID: "user1", Email: "test@example.com", PasswordHash: "hash"}

	t.Run("valid session", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		sessions.On("Get", mock.Anything, "tok").Return(auth.Session{
			Token:     "tok",
			UserID:    "user1",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		users.On("FindByID", mock.Anything, "user1").Return(user, nil)

		got, err := svc.Resolve(context.Background(), "tok")
		assert.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		sessions.On("Get", mock.Anything, "missing").Return(auth.Session{}, ports.ErrNotFound)

		_, err := svc.Resolve(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		users := new(MockUserRepository)
		sessions := new(MockSessionStore)
		svc := newAuthService(users, sessions)

		sessions.On("Get", mock.Anything, "old").Return(auth.Session{
			Token:     "old",
			UserID:    "user1",
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
		sessions.On("Delete", mock.Anything, "old").Return(nil)

		_, err := svc.Resolve(context.Background(), "old")
		assert.ErrorIs(t, err, ErrSessionInvalid)
		sessions.AssertCalled(t, "Delete", mock.Anything, "old")
	})
}

func TestAuthService_Logout(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionStore)
	svc := newAuthService(users, sessions)

	sessions.On("Delete", mock.Anything, "tok").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "tok"))

	sessions.On("Delete", mock.Anything, "gone").Return(ports.ErrNotFound)
	assert.NoError(t, svc.Logout(context.Background(), "gone"))
}
