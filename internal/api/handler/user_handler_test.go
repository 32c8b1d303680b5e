package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/api/middleware"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{
		listAllFn: func(context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: 1, Username: "admin", PasswordHash: "hash1"},
				{ID: 2, Username: "alice", PasswordHash: "hash2"},
			}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp userListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Users))
	}
	if strings.Contains(rec.Body.String(), "hash1") {
		t.Fatalf("password hash leaked in list response")
	}
}

func TestUserHandler_Me(t *testing.T) {
	svc := &stubUserService{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				t.Fatalf("unexpected username %s", username)
			}
			return &domain.User{ID: 2, Username: "alice"}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/users/me", "")
	c.Set(middleware.CtxUsername, "alice")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Me_NoPrincipal(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/users/me", "")
	err := h.Me(c)
	if err == nil {
		t.Fatalf("expected error without principal")
	}
}

func TestUserHandler_Me_RecordGone(t *testing.T) {
	svc := &stubUserService{
		findByUsernameFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/users/me", "")
	c.Set(middleware.CtxUsername, "deleted")
	_ = h.Me(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	svc := &stubUserService{
		findByIDFn: func(context.Context, uint) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/users/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	_ = h.Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Update_Success(t *testing.T) {
	svc := &stubUserService{
		updateFn: func(_ context.Context, id uint, in ports.UpdateInput) (*domain.User, error) {
			if id != 7 || in.FirstName != "Ivy" || in.Email != "ivy@x.com" {
				t.Fatalf("unexpected args: %d %+v", id, in)
			}
			return &domain.User{ID: 7, Username: "ivan", FirstName: "Ivy", Email: "ivy@x.com"}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/api/users/7",
		`{"first_name":"Ivy","last_name":"Stone","email":"ivy@x.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	svc := &stubUserService{
		updateFn: func(context.Context, uint, ports.UpdateInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/api/users/99", `{"email":"x@x.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("99")
	_ = h.Update(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Update_MalformedEmail(t *testing.T) {
	svc := &stubUserService{
		updateFn: func(context.Context, uint, ports.UpdateInput) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/api/users/7", `{"email":"not-an-email"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	_ = h.Update(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_IdempotentNoContent(t *testing.T) {
	calls := 0
	svc := &stubUserService{
		deleteFn: func(_ context.Context, id uint) error {
			calls++
			return nil
		},
	}
	h := NewUserHandler(svc)

	// Absent ids still produce 204.
	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, http.MethodDelete, "/api/users/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")
		if err := h.Delete(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 delete calls, got %d", calls)
	}
}
