package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/glucolab/labconsole/internal/bootstrap"
)

const warmUpTimeout = 30 * time.Second

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.Info("starting lab console",
		slog.String("api_base_url", cfg.API.BaseURL),
		slog.String("http_addr", cfg.HTTP.Addr),
		slog.Bool("redis_enabled", cfg.Redis.Enabled),
		slog.Bool("dev", cfg.IsDev),
	)

	svcs, err := bootstrap.NewServices(&bootstrap.ServiceDeps{Config: &cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svcs.Close(); cerr != nil {
			logger.Error("close services failed", "error", cerr)
		}
	}()

	// Best-effort: a failed restore just means the operator signs in
	// again.
	svcs.WarmUp(logger, warmUpTimeout)

	return bootstrap.RunHTTPServer(&cfg, svcs, logger)
}
