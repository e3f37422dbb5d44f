// Package auth implements account authentication: username + password login
// and account registration.
package auth

import (
	"context"
	"log/slog"

	"github.com/asmelnikov/docgen-backend/internal/auth"
	"github.com/asmelnikov/docgen-backend/internal/domain"
)

// userRepo defines the account repository interface needed by the auth service.
type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// jwtManager defines the token management interface needed by the auth service.
type jwtManager interface {
	GenerateAccessToken(id auth.Identity) (string, error)
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	jwt   jwtManager
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, users userRepo, jwt jwtManager) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		jwt:   jwt,
	}
}
