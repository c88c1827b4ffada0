package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/config"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
	"github.com/oksasatya/rupaykg-biomass/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/rupaykg-biomass/internal/infrastructure/postgres"
)

// OpenStore selects the persistence backend from STORE_DRIVER. The Postgres
// backend is migrated when migrate is true.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger, migrate bool) (repository.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	case "postgres", "":
		if migrate {
			if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pginfra.NewStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
