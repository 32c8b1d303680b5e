package ports

import (
	"context"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
)

// UserRepository defines the persistence interface for user records.
// Lookups return domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update persists the mutable profile columns (first name, last name,
	// email) of an existing record. Username, password, roles, enabled and
	// creation timestamp are never touched.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the record and its role assignments. Deleting an
	// absent id is not an error.
	Delete(ctx context.Context, id uint) error
}

// RoleRepository defines the persistence interface for role records.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
