package discordbot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	colorOK    = 0x00ff00
	colorError = 0xff0000
)

// Options holds the options of one slash command invocation by name.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// NewOptions indexes the top-level options of an interaction.
func NewOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	out := make(Options, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

// StringValue returns the named string option, or "" when absent.
func (o Options) StringValue(name string) string {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	s, _ := opt.Value.(string)
	return s
}

// IntValue returns the named integer option. Discord delivers numbers as float64.
func (o Options) IntValue(name string) (int64, bool) {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// Reply is what a command sends back. Exactly one of Content or Embed is set.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// TextReply is a plain message.
func TextReply(format string, args ...any) *Reply {
	return &Reply{Content: fmt.Sprintf(format, args...)}
}

// ErrorReply is a red embed shown to the caller.
func ErrorReply(msg string) *Reply {
	return &Reply{Embed: &discordgo.MessageEmbed{Title: "Error", Description: msg, Color: colorError}}
}

// CommandHandler defines the interface for Discord command handlers.
type CommandHandler interface {
	GetName() string
	GetCommand() *discordgo.ApplicationCommand
	// Deferred commands are acknowledged first and answered by editing the
	// response, for handlers that call the stats API.
	Deferred() bool
	Execute(ctx context.Context, opts Options) (*Reply, error)
}

// BaseCommand provides common functionality for all commands.
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
	Defer       bool
}

func (c *BaseCommand) GetName() string { return c.Name }

func (c *BaseCommand) Deferred() bool { return c.Defer }

// GetCommand returns the application command definition.
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

func (r *Reply) responseData() *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{Content: r.Content}
	if r.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{r.Embed}
	}
	return data
}

func (r *Reply) webhookEdit() *discordgo.WebhookEdit {
	content := r.Content
	edit := &discordgo.WebhookEdit{Content: &content}
	if r.Embed != nil {
		embeds := []*discordgo.MessageEmbed{r.Embed}
		edit.Embeds = &embeds
	}
	return edit
}

// respond sends r as the immediate interaction response.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, r *Reply) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: r.responseData(),
	})
}

// acknowledge defers the response so a slow handler can edit it later.
func acknowledge(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, r *Reply) error {
	_, err := s.InteractionResponseEdit(i.Interaction, r.webhookEdit())
	return err
}
