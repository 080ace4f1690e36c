package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Parker-ink/foodgram-project-react/internal/api"
	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	"github.com/Parker-ink/foodgram-project-react/internal/log"
	"github.com/Parker-ink/foodgram-project-react/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	logger := log.New(nil)

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fs, err := setup.FileStore(conf)
	if err != nil {
		logger.Error("failed to setup file store", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := setup.Database(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}

	env := env.New(logger, db, fs, conf)

	logger.DebugContext(ctx, "setting up admin")
	if err := setup.Admin(setupCtx, db, conf); err != nil {
		logger.Error("failed to setup admin", slog.Any("error", err))
		os.Exit(1)
	}

	logger.DebugContext(ctx, "loading ingredient reference data")
	loaded, err := setup.Ingredients(setupCtx, db, conf)
	if err != nil {
		logger.Error("failed to load ingredients", slog.Any("error", err))
		os.Exit(1)
	}
	if loaded > 0 {
		logger.Info("loaded ingredients", slog.Int("count", loaded))
	}

	if err := api.Start(env); err != nil {
		env.Logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}
