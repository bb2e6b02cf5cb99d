package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/ports"
)

var (
	// ErrEmailTaken indicates a registration attempt with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrUnknownEmail indicates a login attempt for an email with no account.
	ErrUnknownEmail = errors.New("no account for that email")
	// ErrWrongPassword indicates a login attempt with a bad password.
	ErrWrongPassword = errors.New("wrong password")
	// ErrSessionInvalid indicates a session token that is unknown or expired.
	ErrSessionInvalid = errors.New("session is invalid or expired")
)

type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register creates an account and starts a session for it. A taken email
// leaves the existing account untouched and nothing is written.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := auth.User{
		ID:           uuid.New().String(),
		Email:        auth.NormalizeEmail(email),
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.startSession(ctx, user.ID)
}

// Login verifies credentials and starts a session. The two failure reasons
// stay distinct so the caller can report them separately.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ErrUnknownEmail
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrWrongPassword
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return s.startSession(ctx, user.ID)
}

// Logout deletes the server-side session. Unknown tokens succeed silently so
// logout is always safe to call.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve maps a session token to its user, dropping lapsed sessions on the
// way.
func (s *AuthService) Resolve(ctx context.Context, token string) (auth.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return auth.User{}, ErrSessionInvalid
		}
		return auth.User{}, fmt.Errorf("failed to fetch session: %w", err)
	}

	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return auth.User{}, ErrSessionInvalid
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return auth.User{}, ErrSessionInvalid
		}
		return auth.User{}, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now().UTC()
	session := auth.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
