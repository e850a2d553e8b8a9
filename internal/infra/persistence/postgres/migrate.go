package postgres

import (
	"context"
	"log/slog"

	"taskmanager/config"
	"taskmanager/internal/domain/lifecycle"
	"taskmanager/internal/errors"
	"taskmanager/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// MigrationParams defines the parameters for start-up schema migration
type MigrationParams struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
}

// RegisterMigration runs schema migration on start when database.autoMigrate is enabled.
// The hook is appended after the connection hook registered by New, so the database is reachable.
func RegisterMigration(params MigrationParams) {
	if !params.Config.Database.AutoMigrate {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := Migrate(ctx, params.DB); err != nil {
				return err
			}
			params.Logger.Info("Database schema migrated")

			return nil
		},
	})
}

// Migrate creates or updates the users and tasks tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database schema")
	}

	return nil
}
