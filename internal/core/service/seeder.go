package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

const (
	adminUsername  = "admin"
	adminEmail     = "admin@example.com"
	adminFirstName = "Admin"
	adminLastName  = "User"
)

// seedRoles lists the baseline roles ensured at every start.
var seedRoles = []domain.Role{
	{Name: domain.RoleAdmin, Description: "Administrator role"},
	{Name: domain.RoleUser, Description: "Regular user role"},
	{Name: domain.RoleModerator, Description: "Moderator role"},
}

// Seeder idempotently ensures the baseline roles and the default
// administrator account exist. It runs once, before the server starts
// accepting connections.
type Seeder struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	adminPassword string
	log           zerolog.Logger
}

func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, adminPassword string, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, adminPassword: adminPassword, log: log}
}

// Run seeds roles first, then the admin account. Safe to call on every
// start: existing roles and the existing admin are never duplicated.
func (s *Seeder) Run(ctx context.Context) error {
	for _, role := range seedRoles {
		if err := s.ensureRole(ctx, role); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	if err := s.ensureAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *Seeder) ensureRole(ctx context.Context, role domain.Role) error {
	exists, err := s.roles.ExistsByName(ctx, role.Name)
	if err != nil || exists {
		return err
	}
	s.log.Info().Str("role", role.Name).Msg("creating role")
	return s.roles.Create(ctx, &role)
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	exists, err := s.users.ExistsByUsername(ctx, adminUsername)
	if err != nil || exists {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: string(hash),
		FirstName:    adminFirstName,
		LastName:     adminLastName,
		Enabled:      true,
	}

	if role, err := s.roles.FindByName(ctx, domain.RoleAdmin); err == nil {
		admin.Roles = []domain.Role{*role}
	}

	s.log.Info().Str("username", adminUsername).Msg("creating default admin user")
	return s.users.Create(ctx, admin)
}
