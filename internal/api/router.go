package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/api/handler"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/api/middleware"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/service"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/infrastructure/config"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/infrastructure/db/gormdb"
	redisinfra "github.com/kasisheraz/uk-user-management-backend-2025/internal/infrastructure/db/redis"
)

// The request-metrics middleware registers its collectors with the default
// prometheus registry; building more than one router (tests) must not
// register them twice.
var (
	promOnce       sync.Once
	promMiddleware echo.MiddlewareFunc
)

func requestMetrics() echo.MiddlewareFunc {
	promOnce.Do(func() {
		promMiddleware = echoprometheus.NewMiddleware("useraccounts")
	})
	return promMiddleware
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, which disables the login throttle.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(requestMetrics())

	// --- Dependencies ---
	userRepo := gormdb.NewUserRepository(db)
	roleRepo := gormdb.NewRoleRepository(db)
	userService := service.NewUserService(userRepo, roleRepo, cfg.PasswordMinLen, log)
	authenticator := service.NewAuthenticator(userService)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisinfra.NewLoginThrottle(rdb, cfg.Login)
	}

	authHandler := handler.NewAuthHandler(userService, authenticator, tokens, throttle)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Anonymous routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.LoginInfo)
	e.POST("/login", authHandler.Login)

	// --- Protected routes (access policy table) ---
	adminOnly := middleware.RBAC(domain.RolePrefix + domain.RoleAdmin)
	userOrAdmin := middleware.RBAC(domain.RolePrefix+domain.RoleUser, domain.RolePrefix+domain.RoleAdmin)

	users := e.Group("/api/users", authMiddleware)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/me", userHandler.Me, userOrAdmin)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
