package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/api"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/service"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/infrastructure/config"
	"github.com/kasisheraz/uk-user-management-backend-2025/internal/infrastructure/db/gormdb"
	redisinfra "github.com/kasisheraz/uk-user-management-backend-2025/internal/infrastructure/db/redis"
	"github.com/kasisheraz/uk-user-management-backend-2025/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	db, err := gormdb.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	// Seed baseline roles and the default admin before accepting connections.
	seeder := service.NewSeeder(gormdb.NewUserRepository(db), gormdb.NewRoleRepository(db), cfg.AdminPassword, log)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap seeding failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
