package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/app"
	"github.com/markdave123-py/Sumora/internal/config"
	"github.com/markdave123-py/Sumora/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	application, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer application.Close()

	log.Info("sumora is running", zap.Bool("persistence", cfg.PersistenceEnabled()))
	if err := application.Run(ctx); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}
	log.Info("shutting down")
}
