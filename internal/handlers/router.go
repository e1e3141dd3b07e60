package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/arenalab/rooms-admin/config"
	"github.com/arenalab/rooms-admin/internal/middleware"
	"github.com/arenalab/rooms-admin/internal/monitor"
	"github.com/arenalab/rooms-admin/internal/registry"
)

// NewRouter wires the panel endpoints under the configured API prefix. The
// Redis client may be nil; the rate limiter and response cache then stay off
// regardless of their toggles.
func NewRouter(cfg *config.Config, opts monitor.Options, reg registry.Registry, rdb *redis.Client, logger *logrus.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithField("panic", recovered).Error("request handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "Internal server error",
		})
	}))
	router.Use(middleware.RequestLogger(logger))
	if opts.EnableCORS {
		router.Use(middleware.OriginFilter(cfg.AllowedOrigins))
	}

	panel := NewPanel(opts, reg, rdb, logger)

	group := router.Group(opts.APIPrefix)
	if opts.RateLimit.Enabled && rdb != nil {
		group.Use(middleware.RateLimit(rdb, opts.RateLimit.RequestsPerMinute))
	}

	// Health and login stay outside the auth wall.
	group.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Auth == monitor.AuthJWT {
		group.POST("/auth/login", Login(cfg.JWTSecret, cfg.AdminUser, cfg.AdminPassword))
		group.Use(middleware.JWTAuth(cfg.JWTSecret))
	}

	group.GET("/", panel.ListRooms)
	group.GET("/room", panel.InspectRoom)
	group.GET("/room/call", panel.CallRoom)
	group.GET("/metrics", Metrics(logger))
	group.GET("/ws", panel.LiveFeed)

	return router
}
