// Package main is the entry point for the hello service HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sebasr/hello-service/internal/config"
	"github.com/sebasr/hello-service/internal/logging"
	"github.com/sebasr/hello-service/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, cfgErr := config.Load()

	level := "info"
	if cfgErr == nil {
		level = cfg.Log.Level
	}
	logger, err := logging.New(level)
	if err != nil {
		logger = zap.NewExample()
		logger.Error("logger init error", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfgErr != nil {
		logger.Error("failed to load configuration", zap.Error(cfgErr))
		return 1
	}

	gin.SetMode(cfg.Server.Mode)
	router := server.New(&server.Dependencies{
		Config: cfg,
		Logger: logger,
	})
	srv := server.NewHTTPServer(&cfg.Server, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, srv, cfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Error("server error", zap.Error(err), zap.String("addr", srv.Addr))
		return 1
	}
	return 0
}
