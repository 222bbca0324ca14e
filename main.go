package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quicknotes/notes-api/internal/app"
	"github.com/quicknotes/notes-api/internal/config"
	"github.com/quicknotes/notes-api/pkg/logger"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetFormat(cfg.Log.Format)
	logger.Debugf("startup: LOG_LEVEL=%s env=%s prefix=%q", logger.LevelString(), cfg.Server.Environment, cfg.Server.APIPrefix)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatalf("failed to initialise backends: %v", err)
	}
	defer a.Close(context.Background())

	if err := a.Serve(ctx, cfg); err != nil {
		logger.Errorf("server error: %v", err)
	}
}
