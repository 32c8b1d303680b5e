package gormdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Connect opens a PostgreSQL connection through GORM, verifies connectivity
// with a ping and migrates the user/role schema. TranslateError is enabled so
// uniqueness violations surface as gorm.ErrDuplicatedKey.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("gorm ping: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users, roles and user_roles tables. The
// unique indexes on username, email and role name are the storage-level
// backstop for the service's check-then-act registration sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Role{}, &domain.User{}); err != nil {
		return fmt.Errorf("gorm migrate: %w", err)
	}
	return nil
}
