package infra

import (
	"catalog/app"
	"catalog/infra/memory"
	"catalog/infra/postgres"
	"catalog/pkg/config"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewRepository opens the store selected by STORAGE_DRIVER. The Postgres
// schema is created on first use.
func NewRepository(ctx context.Context, cfg *config.AppConfig) (app.Repository, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		zap.L().Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepository(), nil
	case config.StorageDriverPostgres:
		pgRepository := postgres.NewPgRepository(cfg.PostgresDSN())
		if err := pgRepository.Migrate(ctx); err != nil {
			_ = pgRepository.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		return pgRepository, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
