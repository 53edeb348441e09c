package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coldtrace/foodtrace/internal/infra/auditor"
	"github.com/coldtrace/foodtrace/internal/infra/config"
)

// App encapsulates the HTTP server and background auditor lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	auditor *auditor.Auditor
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, aud *auditor.Auditor) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, auditor: aud}
}

// Run starts the auditor and HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if err := a.auditor.Start(); err != nil {
		return err
	}
	defer a.auditor.Stop()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
