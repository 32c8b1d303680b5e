package ports

import (
	"context"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateInput carries the profile fields mutable through the update path.
type UpdateInput struct {
	FirstName string
	LastName  string
	Email     string
}

// UserService is the single source of truth for account creation, retrieval,
// update, deletion and password verification.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	ValidatePassword(raw, storedHash string) bool
	Update(ctx context.Context, id uint, in UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}
