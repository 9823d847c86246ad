// Package server provides HTTP server setup and configuration.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sebasr/hello-service/internal/config"
	"github.com/sebasr/hello-service/internal/handlers"
	"github.com/sebasr/hello-service/internal/middleware"
)

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger // Optional: a no-op logger is used when nil
}

// New creates a new Gin router with all routes configured. It does not touch
// gin's process-wide mode; callers set that once with gin.SetMode.
func New(deps *Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// gin.New() instead of gin.Default(): access logging goes through zap,
	// not gin's coloured writer.
	router := gin.New()

	// Client IPs, and with them rate limit keys, come from X-Forwarded-For
	// only when the peer is a configured proxy. An empty list trusts nobody.
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", zap.Error(err))
	}

	router.Use(gin.Recovery())
	router.Use(middleware.AccessLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Accept", "Accept-Encoding", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RequestID())

	if cfg.RateLimit.Enabled {
		router.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Period))
	}
	if cfg.Server.GzipEnabled {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	router.GET("/", handlers.HelloHandler)

	return router
}
