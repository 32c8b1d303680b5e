package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

func registerTestUser(t *testing.T, svc *UserService, username, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: username, Email: username + "@x.com", Password: password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestAuthenticator_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubRoleRepo(domain.RoleUser))
	auth := NewAuthenticator(svc)

	registerTestUser(t, svc, "alice", "pw123456")

	principal, err := auth.Authenticate(context.Background(), "alice", "pw123456")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if principal.Username != "alice" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if len(principal.Roles) != 1 || principal.Roles[0] != "ROLE_USER" {
		t.Fatalf("expected roles [ROLE_USER], got %v", principal.Roles)
	}
}

func TestAuthenticator_UnknownUser(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubRoleRepo())
	auth := NewAuthenticator(svc)

	if _, err := auth.Authenticate(context.Background(), "ghost", "pw123456"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticator_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubRoleRepo(domain.RoleUser))
	auth := NewAuthenticator(svc)

	registerTestUser(t, svc, "bob", "pw123456")

	if _, err := auth.Authenticate(context.Background(), "bob", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticator_DisabledUserIndistinguishableFromWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubRoleRepo(domain.RoleUser))
	auth := NewAuthenticator(svc)

	created := registerTestUser(t, svc, "carol", "pw123456")
	repo.users[created.ID].Enabled = false

	_, disabledErr := auth.Authenticate(context.Background(), "carol", "pw123456")
	if !errors.Is(disabledErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled account, got %v", disabledErr)
	}

	_, wrongErr := auth.Authenticate(context.Background(), "carol", "wrongpass")
	if !errors.Is(wrongErr, disabledErr) {
		t.Fatalf("disabled account and wrong password must be indistinguishable: %v vs %v", disabledErr, wrongErr)
	}
}

func TestAuthenticator_MultipleRoleTags(t *testing.T) {
	repo := newStubUserRepo()
	roles := newStubRoleRepo(domain.RoleUser, domain.RoleAdmin)
	svc := newTestService(repo, roles)
	auth := NewAuthenticator(svc)

	created := registerTestUser(t, svc, "dave", "pw123456")
	admin, _ := roles.FindByName(context.Background(), domain.RoleAdmin)
	repo.users[created.ID].Roles = append(repo.users[created.ID].Roles, *admin)

	principal, err := auth.Authenticate(context.Background(), "dave", "pw123456")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !principal.HasRole("ROLE_USER") || !principal.HasRole("ROLE_ADMIN") {
		t.Fatalf("expected ROLE_USER and ROLE_ADMIN, got %v", principal.Roles)
	}
}
