package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"

	"github.com/oksasatya/rupaykg-biomass/config"
	"github.com/oksasatya/rupaykg-biomass/internal/container"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

// seed creates the first admin account. Re-running it is a no-op once the
// e-mail exists.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.SeedAdminPassword == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	store, err := container.OpenStore(ctx, cfg, logger, true)
	if err != nil {
		logger.WithError(err).Fatal("store init failed")
	}
	c := container.New(container.Infra{Config: cfg, Logger: logger, Store: store})
	defer c.Close()

	log := logger.WithField("email", cfg.SeedAdminEmail)
	_, err = store.Users().GetByEmail(ctx, cfg.SeedAdminEmail)
	switch {
	case err == nil:
		log.Info("admin already seeded")
		return
	case !errors.Is(err, repository.ErrNotFound):
		log.WithError(err).Fatal("lookup failed")
	}

	if err := c.Auth.Register(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword, entity.RoleAdmin); err != nil {
		log.WithError(err).Fatal("seed admin failed")
	}
	if err := c.Audit.LogAction(ctx, "Admin Seeded", "seed"); err != nil {
		log.WithError(err).Warn("audit entry for seed failed")
	}
	log.Info("admin seeded")
}
