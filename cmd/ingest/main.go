package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/app"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/watcher"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ingest"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("app.init_failed", zap.Error(err))
	}
	defer a.Close()

	in := ingest.NewIngester(a.Service, cfg.Ingest.DoneDir, cfg.Ingest.FailedDir, a.Transcriber != nil, logger)

	w, err := watcher.New(cfg.Ingest.Dir, in.Extensions(), in.Handle, logger, cfg.Ingest.Workers)
	if err != nil {
		logger.Fatal("ingest.watcher_failed", zap.Error(err))
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("ingest.stopped", zap.Error(err))
	}
}
