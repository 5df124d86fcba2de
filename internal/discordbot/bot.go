// Package discordbot is a Discord bot that answers dice commands and reads
// league standings from the frolf-stats API.
package discordbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/bwmarrin/discordgo"
)

// CommandTimeout bounds one command execution.
const CommandTimeout = 10 * time.Second

// Config holds the configuration for the bot.
type Config struct {
	Token string
	// ApplicationID falls back to the session user when empty.
	ApplicationID string
	// GuildID registers commands on one server instead of globally.
	GuildID string
	API     StatsAPI
	Logger  *slog.Logger
	// Seed fixes dice rolls for tests.
	Seed int64
}

// Bot represents the Discord bot instance.
type Bot struct {
	session    *discordgo.Session
	config     *Config
	logger     *slog.Logger
	handlers   []CommandHandler
	commands   map[string]CommandHandler
	commandIDs map[string]string
}

// New creates a bot. Commands are registered by Start.
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}
	if cfg.API == nil {
		return nil, errors.New("stats API cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	b := &Bot{
		session:    session,
		config:     cfg,
		logger:     logger,
		handlers:   DefaultCommands(cfg.API, NewRoller(&RollerConfig{Seed: cfg.Seed})),
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
	}
	session.AddHandler(b.handleInteraction)
	return b, nil
}

// DefaultCommands is the command set of the bot.
func DefaultCommands(api StatsAPI, roller *Roller) []CommandHandler {
	return []CommandHandler{
		NewRollCommand(roller),
		NewChooseCommand(roller),
		NewAddCommand(),
		NewStandingsCommand(api),
		NewMedianCommand(api),
	}
}

// Start opens the gateway connection and registers every command.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	for _, h := range b.handlers {
		if err := b.RegisterCommand(h); err != nil {
			return err
		}
	}
	b.logger.Info("Discord bot running", attr.Int("commands", len(b.commands)))
	return nil
}

// Stop removes the registered commands and closes the connection.
func (b *Bot) Stop() error {
	appID := b.appID()
	for name, id := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, id); err != nil {
			b.logger.Warn("Failed to delete command", attr.String("command", name), attr.Error(err))
		}
	}
	return b.session.Close()
}

// RegisterCommand registers a command with Discord.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	created, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = created.ID
	b.logger.Info("Registered command",
		attr.String("command", cmd.GetName()),
		attr.String("guild_id", b.config.GuildID),
	)
	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	h, ok := b.commands[data.Name]
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
	defer cancel()
	ctx = attr.WithCorrelationID(ctx, i.ID)

	if h.Deferred() {
		if err := acknowledge(s, i); err != nil {
			b.logger.ErrorContext(ctx, "Failed to acknowledge interaction", attr.String("command", data.Name), attr.Error(err))
			return
		}
	}

	reply := b.execute(ctx, h, NewOptions(data.Options))

	var err error
	if h.Deferred() {
		err = editResponse(s, i, reply)
	} else {
		err = respond(s, i, reply)
	}
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to send reply", attr.String("command", data.Name), attr.Error(err))
	}
}

// execute runs h and turns a handler error into a generic error reply.
func (b *Bot) execute(ctx context.Context, h CommandHandler, opts Options) *Reply {
	reply, err := h.Execute(ctx, opts)
	if err != nil {
		b.logger.ErrorContext(ctx, "Command failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("command", h.GetName()),
			attr.Error(err),
		)
		return ErrorReply("Something went wrong, try again later.")
	}
	if reply == nil {
		return TextReply("Done.")
	}
	return reply
}
