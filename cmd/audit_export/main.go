package main

import (
	"bytes"
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/rupaykg-biomass/config"
	"github.com/oksasatya/rupaykg-biomass/internal/application"
	"github.com/oksasatya/rupaykg-biomass/internal/container"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

// audit_export archives the full audit trail to
// gs://$GCS_BUCKET/audit/<timestamp>.json.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit-export", cfg.Env)

	if cfg.GCSBucket == "" {
		logger.Fatal("GCS_BUCKET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := container.OpenStore(ctx, cfg, logger, false)
	if err != nil {
		logger.WithError(err).Fatal("store init failed")
	}
	c := container.New(container.Infra{Config: cfg, Logger: logger, Store: store})
	defer c.Close()

	var buf bytes.Buffer
	system := application.Principal{Subject: "audit-export", Role: entity.RoleAdmin}
	n, err := c.Audit.Export(ctx, system, &buf)
	if err != nil {
		logger.WithError(err).Fatal("export failed")
	}

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to init GCS client")
	}
	defer func() { _ = gcs.Close() }()

	object := "audit/" + time.Now().UTC().Format("20060102T150405Z") + ".json"
	uri, err := helpers.UploadObject(ctx, gcs, cfg.GCSBucket, object, "application/json", &buf)
	if err != nil {
		logger.WithError(err).Fatal("upload failed")
	}
	logger.WithField("entries", n).WithField("uri", uri).Info("audit trail exported")
}
