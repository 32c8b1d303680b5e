package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/api/metrics"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users         ports.UserService
	authenticator ports.Authenticator
	tokens        ports.TokenIssuer
	throttle      ports.LoginThrottle // nil disables throttling
}

func NewAuthHandler(users ports.UserService, authenticator ports.Authenticator, tokens ports.TokenIssuer, throttle ports.LoginThrottle) *AuthHandler {
	return &AuthHandler{users: users, authenticator: authenticator, tokens: tokens, throttle: throttle}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		var dup *domain.DuplicateIdentityError
		switch {
		case errors.As(err, &dup):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: dup.Error()})
		case errors.Is(err, domain.ErrPasswordTooShort):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, user)
}

// LoginInfo documents how to obtain a token. The actual login lives at
// POST /login.
//
// @Summary      Login instructions
// @Tags         auth
// @Produce      plain
// @Success      200  {string}  string
// @Router       /auth/login [post]
func (h *AuthHandler) LoginInfo(c echo.Context) error {
	return c.String(http.StatusOK, "Use POST /login with Basic Authentication")
}

// Login authenticates a username/password pair and issues a JWT. Credentials
// arrive either as HTTP Basic auth or as a JSON body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  false  "Login credentials (alternative to Basic auth)"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	username, password, err := h.credentials(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}

	ctx := c.Request().Context()

	if h.throttle != nil {
		blocked, err := h.throttle.Blocked(ctx, username)
		if err != nil {
			return err
		}
		if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many login attempts"})
		}
	}

	start := time.Now()
	principal, err := h.authenticator.Authenticate(ctx, username, password)
	metrics.AuthenticationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if h.throttle != nil {
			if terr := h.throttle.RecordFailure(ctx, username); terr != nil {
				return terr
			}
		}
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		// Both unknown-user and wrong-password collapse to the same body so
		// the endpoint is not an account-existence oracle.
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}

	if h.throttle != nil {
		if err := h.throttle.Reset(ctx, username); err != nil {
			return err
		}
	}

	token, err := h.tokens.Issue(principal)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		Username: principal.Username,
		Roles:    principal.Roles,
	})
}

// credentials accepts HTTP Basic auth or a JSON body, in that order.
func (h *AuthHandler) credentials(c echo.Context) (string, string, error) {
	if username, password, ok := c.Request().BasicAuth(); ok {
		return username, password, nil
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return "", "", err
	}
	if err := c.Validate(&req); err != nil {
		return "", "", err
	}
	return req.Username, req.Password, nil
}
