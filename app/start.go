package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds the graceful stop of servers and workers.
const ShutdownTimeout = 15 * time.Second

// Run starts the event bus, the import queue and the HTTP servers, and
// blocks until ctx is cancelled or one of them fails. It always shuts
// everything down before returning.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	if err := app.Modules.Result.Start(ctx); err != nil {
		app.closeResources()
		return fmt.Errorf("failed to start result module: %w", err)
	}

	app.server = &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		app.metricsServer = &http.Server{
			Addr:              addr,
			Handler:           metrics.Handler(app.Observability.Registry),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.EventBus.Run(gctx)
	})
	g.Go(func() error {
		logger.InfoContext(gctx, "Starting HTTP server", attr.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if app.metricsServer != nil {
		g.Go(func() error {
			logger.InfoContext(gctx, "Starting metrics server", attr.String("addr", app.metricsServer.Addr))
			if err := app.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		app.Shutdown()
		return nil
	})

	return g.Wait()
}

// Shutdown stops servers, workers and connections in reverse start order.
func (app *App) Shutdown() {
	logger := app.Observability.Logger
	logger.Info("Shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{app.server, app.metricsServer} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("HTTP server shutdown failed", attr.String("addr", srv.Addr), attr.Error(err))
		}
	}
	if app.Modules.Result != nil {
		if err := app.Modules.Result.Close(ctx); err != nil {
			logger.Error("Failed to stop result module", attr.Error(err))
		}
	}
	app.closeResources()
	logger.Info("Application shut down gracefully")
}
