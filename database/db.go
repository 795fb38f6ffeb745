package database

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database and migrates the given models.
// sqlite is the default, file-based store; postgres is available for
// anything beyond a single box.
func Connect(cfg *config.Config, logger *slog.Logger, entities ...any) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	// TranslateError maps driver unique-violation errors to
	// gorm.ErrDuplicatedKey, which the auth service relies on.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(entities...); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully", "driver", cfg.DBDriver)
	return db, nil
}

// SeedAdmin creates an initial administrator when the users table is
// empty, so a fresh install can reach the admin panel at all.
func SeedAdmin(db *gorm.DB, logger *slog.Logger) error {
	ctx := context.Background()
	users := repository.NewUserRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Email:    "admin@localhost",
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	logger.Warn("Seeded default admin account, change its password", "email", admin.Email)
	return nil
}
