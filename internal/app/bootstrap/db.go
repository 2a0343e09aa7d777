// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	influencerhub "github.com/elearnprepa/influencerhub"
	"github.com/elearnprepa/influencerhub/internal/app/store/postgres"
)

// ConnectDB establishes the Postgres connection pool.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	pool, err := postgres.NewPool(ctx, appCfg.PostgresDSN, appCfg.PostgresMaxConns, appCfg.PostgresMinConns)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect postgres: %w", err)
	}
	logger.Info("connected to postgres",
		zap.Int32("max_conns", appCfg.PostgresMaxConns),
		zap.Int32("min_conns", appCfg.PostgresMinConns))
	return DBDeps{Pool: pool}, nil
}

// EnsureSchema applies any pending database migrations.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	migrations, err := fs.Sub(influencerhub.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	if err := postgres.RunMigrations(appCfg.PostgresDSN, migrations, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
