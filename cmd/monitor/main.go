package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/arenalab/rooms-admin/config"
	"github.com/arenalab/rooms-admin/internal/handlers"
	"github.com/arenalab/rooms-admin/internal/monitor"
	"github.com/arenalab/rooms-admin/internal/registry"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}
	defer rdb.Close()
	logger.Info("Redis connection established")

	reg := registry.NewRedis(rdb, cfg.CallTimeout)

	opts := monitor.DefaultOptions()
	opts.EnableCORS = true
	opts.RateLimit = monitor.RateLimitOptions{Enabled: true, RequestsPerMinute: 300}

	router := handlers.NewRouter(cfg, opts, reg, rdb, logger)

	logger.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"prefix": opts.APIPrefix,
	}).Info("starting room admin panel")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}
