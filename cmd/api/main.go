package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/frolf-stats/app"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	migrate := flag.Bool("migrate", false, "Apply pending database migrations before serving")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	obs := observability.New(observability.Config{
		ServiceName: "frolf-stats-api",
		Environment: cfg.Observability.Environment,
		LogLevel:    cfg.Observability.LogLevel,
	})
	logger := obs.Logger
	logger.Info("Starting frolf-stats API")

	application, err := app.NewApp(ctx, cfg, obs, app.Options{Migrate: *migrate})
	if err != nil {
		logger.Error("Failed to initialize app", attr.Error(err))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Application stopped with error", attr.Error(err))
		os.Exit(1)
	}
	logger.Info("frolf-stats API stopped")
}
