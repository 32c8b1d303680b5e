package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

const defaultPasswordMinLen = 6

// UserService implements the user directory: registration, lookup, update,
// deletion and password verification.
type UserService struct {
	users          ports.UserRepository
	roles          ports.RoleRepository
	passwordMinLen int
	log            zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, passwordMinLen int, log zerolog.Logger) *UserService {
	if passwordMinLen <= 0 {
		passwordMinLen = defaultPasswordMinLen
	}
	return &UserService{users: users, roles: roles, passwordMinLen: passwordMinLen, log: log}
}

// Register creates a new account. The username existence check runs before
// the email check, so a collision on both fields reports the username. The
// password is stored as a bcrypt hash and the default USER role is assigned
// when it exists in the store.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if len(in.Password) < s.passwordMinLen {
		return nil, domain.ErrPasswordTooShort
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.DuplicateIdentityError{Field: "username"}
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.DuplicateIdentityError{Field: "email"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Enabled:      true,
		CreatedAt:    time.Now().UTC(),
	}

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	switch {
	case err == nil:
		user.Roles = []domain.Role{*role}
	case errors.Is(err, domain.ErrRoleNotFound):
		// Degraded mode: the account is created with an empty role set.
		s.log.Warn().Str("username", in.Username).Msg("default USER role missing, registering without roles")
	default:
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration may slip past the existence checks; the
		// store's uniqueness constraint is the backstop.
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, s.resolveDuplicate(ctx, in.Username)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) resolveDuplicate(ctx context.Context, username string) error {
	if taken, err := s.users.ExistsByUsername(ctx, username); err == nil && taken {
		return &domain.DuplicateIdentityError{Field: "username"}
	}
	return &domain.DuplicateIdentityError{Field: "email"}
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListAll returns every user record. No pagination: this backs a low-volume
// administrative endpoint.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// ValidatePassword reports whether raw produces storedHash. Comparison is
// delegated to bcrypt, never re-implemented as a byte equality check.
func (s *UserService) ValidatePassword(raw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) == nil
}

// Update overwrites the first name, last name and email of an existing
// record. Username, password, roles, enabled and creation timestamp are left
// untouched.
func (s *UserService) Update(ctx context.Context, id uint, in ports.UpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, &domain.DuplicateIdentityError{Field: "email"}
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the record with the given id. Absence is not an error.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}
