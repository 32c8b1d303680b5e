package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/api/middleware"
)

// ctxUsername extracts the authenticated username injected by the Auth
// middleware and performs a fast-fail check before any service call: a
// missing username means the middleware did not run on this route.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.CtxUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
