package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"auth_portal/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL                = `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	selectUserByEmailSQL         = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`
	selectUserByEmailOrNameSQL   = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ? OR username = ?`
	uniqueConstraintFailedMarker = "UNIQUE constraint failed"
)

// Create inserts a new user and returns its ID. A collision on the username or
// email UNIQUE constraint maps to ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, email, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), uniqueConstraintFailedMarker) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetByEmailOrUsername fetches a user matching either identifier, used by the
// signup duplicate pre-check. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailOrNameSQL, email, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
