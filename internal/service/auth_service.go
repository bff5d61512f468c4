package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auth_portal/internal/models"
	"auth_portal/internal/repository"
	"auth_portal/internal/session"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the fixed work factor of the reference deployment.
const bcryptCost = 10

// SessionStore is the slice of the session manager the auth workflows need.
type SessionStore interface {
	Create(userID int, username string) models.Session
	Get(token string) (models.Session, bool)
	Destroy(token string)
}

var _ SessionStore = (*session.Manager)(nil)

// AuthService orchestrates the credential store, password hashing and the
// session store. It is stateless across calls.
type AuthService struct {
	users    repository.Users
	sessions SessionStore
}

func NewAuthService(users repository.Users, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// SignUp validates input, rejects duplicates and inserts a new user row.
// Returns the new user ID.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (int, error) {
	if isBlank(username) || isBlank(email) || isBlank(password) {
		return 0, &ValidationError{Msg: "All fields are required"}
	}

	// Pre-check for a friendlier error; the UNIQUE constraints on insert are
	// what actually decide uniqueness under concurrent signups.
	existing, err := s.users.GetByEmailOrUsername(ctx, email, username)
	if err != nil {
		return 0, fmt.Errorf("%w: check existing user: %v", ErrStore, err)
	}
	if existing != nil {
		return 0, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("%w: %v", ErrCreateUser, err)
	}
	return id, nil
}

// Login validates credentials and issues a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Session, error) {
	if isBlank(email) || isBlank(password) {
		return models.Session{}, &ValidationError{Msg: "Email and password are required"}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: lookup user: %v", ErrStore, err)
	}
	if u == nil {
		return models.Session{}, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	return s.sessions.Create(u.ID, u.Username), nil
}

// CheckAuth resolves a session token. Never errors: unknown, expired and empty
// tokens all report false.
func (s *AuthService) CheckAuth(token string) (models.Session, bool) {
	if token == "" {
		return models.Session{}, false
	}
	return s.sessions.Get(token)
}

// Logout destroys the session for a token. Idempotent.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.sessions.Destroy(token)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// helper: hash password with a fresh random salt per call
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// helper: verify password against hash (constant-time inside bcrypt)
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
