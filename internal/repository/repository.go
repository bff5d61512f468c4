package repository

import (
	"context"
	"database/sql"
	"errors"

	"auth_portal/internal/models"
	"auth_portal/internal/repository/db"
)

// ErrDuplicateUser is returned by Create when the username or email collides
// with an existing row. The UNIQUE constraints in the schema are the single
// point of truth for uniqueness under concurrent signups.
var ErrDuplicateUser = errors.New("user already exists")

// Users is the credential store. Lookups return (nil, nil) when no row matches;
// only infrastructure failures surface as errors.
type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
}

type Repository struct {
	Users Users
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(sqlDB),
	}
}

// InitDB is re-exported so main only has to import one repository package.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
