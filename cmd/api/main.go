package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/config"
	"github.com/oksasatya/rupaykg-biomass/internal/container"
	"github.com/oksasatya/rupaykg-biomass/internal/router"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET not set; signing tokens with the development fallback key")
	}

	ctx := context.Background()

	store, err := container.OpenStore(ctx, cfg, logger, true)
	if err != nil {
		logger.WithError(err).Fatal("store init failed")
	}

	c := container.New(container.Infra{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Redis:     connectRedis(ctx, cfg, logger),
		Publisher: connectRabbit(cfg, logger),
		ES:        connectES(cfg, logger),
	})
	defer c.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewEngine(c),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.WithField("store", cfg.StoreDriver).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		helpers.LogError(logger, "server forced to shutdown", err, nil)
	}
	logger.Info("server exited properly")
}

// The optional backends below log and return nil when unconfigured or
// unreachable; the API keeps serving without them.

func connectRedis(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" || !cfg.RateLimitEnabled {
		logger.Info("rate limiting disabled")
		return nil
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		logger.WithError(err).Warn("redis unreachable; limiter fails open")
	}
	return rdb
}

func connectRabbit(cfg *config.Config, logger *logrus.Logger) *helpers.RabbitPublisher {
	if cfg.RabbitMQURL == "" {
		return nil
	}
	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue)
	if err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable; notifications disabled")
		return nil
	}
	return pub
}

func connectES(cfg *config.Config, logger *logrus.Logger) *elasticsearch.Client {
	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return nil
	}
	es, err := helpers.NewESClient(helpers.ESOptions{
		Addresses: addrs,
		Username:  cfg.ElasticsearchUser,
		Password:  cfg.ElasticsearchPass,
	})
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable; search mirror disabled")
		return nil
	}
	return es
}
