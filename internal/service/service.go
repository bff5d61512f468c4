package service

import (
	"context"

	"auth_portal/internal/models"
	"auth_portal/internal/repository"
	"auth_portal/internal/session"
)

// Authorization covers the full account workflow: signup, login, session
// checks and logout. Session records are only ever touched through the
// injected session manager.
type Authorization interface {
	SignUp(ctx context.Context, username, email, password string) (int, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
	CheckAuth(token string) (models.Session, bool)
	Logout(token string)
}

// Service aggregates all sub-services exposed to the HTTP layer.
type Service struct {
	Authorization
}

func NewService(repos *repository.Repository, sessions *session.Manager) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, sessions),
	}
}
