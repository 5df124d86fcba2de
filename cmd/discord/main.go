package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/config"
	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
	"github.com/Black-And-White-Club/frolf-stats/internal/discordbot"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	obs := observability.New(observability.Config{
		ServiceName: "frolf-stats-discord",
		Environment: cfg.Observability.Environment,
		LogLevel:    cfg.Observability.LogLevel,
	})
	logger := obs.Logger

	bot, err := discordbot.New(&discordbot.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.ApplicationID,
		GuildID:       cfg.Discord.GuildID,
		API:           apiclient.New(cfg.Discord.APIURL),
		Logger:        logger,
	})
	if err != nil {
		logger.Error("Failed to create Discord bot", attr.Error(err))
		os.Exit(1)
	}

	if err := bot.Start(); err != nil {
		logger.Error("Failed to start Discord bot", attr.Error(err))
		_ = bot.Stop()
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Shutting down Discord bot")
	if err := bot.Stop(); err != nil {
		logger.Error("Error stopping Discord bot", attr.Error(err))
		os.Exit(1)
	}
}
