package service

import (
	"context"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

// Authenticator verifies username/password pairs against the directory and
// produces the principal carried by a successful authentication.
//
// The check is a single synchronous decision with no side effects beyond the
// store read, so it is safe to run on any worker goroutine.
type Authenticator struct {
	users ports.UserService
}

func NewAuthenticator(users ports.UserService) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate looks up the user and verifies the presented password.
// A disabled account fails with the same error as a wrong password so the
// outcome carries no account-state oracle.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*ports.Principal, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !user.Enabled || !a.users.ValidatePassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.Principal{
		Username: user.Username,
		Roles:    user.AuthorityTags(),
	}, nil
}
