package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/glucolab/labconsole/config"
	httpx "github.com/glucolab/labconsole/internal/http"
)

func contextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// RunHTTPServer builds the router, serves it, and blocks until SIGINT or
// SIGTERM, then drains within the configured shutdown timeout.
func RunHTTPServer(cfg *config.AppConfig, svcs *Services, logger *slog.Logger) error {
	handler, err := httpx.NewRouter(httpx.RouterServices{
		Session:         svcs.Session,
		Data:            svcs.Data,
		API:             svcs.API,
		LoginRateLimit:  cfg.Auth.LoginRateLimit,
		LoginRateWindow: cfg.Auth.LoginRateWindow,
		IsDev:           cfg.IsDev,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := contextWithTimeout(cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
