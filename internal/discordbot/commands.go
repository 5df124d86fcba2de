package discordbot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
	"github.com/bwmarrin/discordgo"
)

// StandingsLimit is how many leaderboard rows /standings shows.
const StandingsLimit = 10

// StatsAPI is the part of the API client the stats commands use.
type StatsAPI interface {
	Standings(ctx context.Context, sessionID int64, division string) ([]apiclient.Standing, error)
	Median(ctx context.Context, sessionID *int64, division string) (*float64, error)
}

var _ StatsAPI = (*apiclient.Client)(nil)

var (
	sessionOption = &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "session",
		Description: "Event session id",
		Required:    true,
	}
	divisionOption = &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "division",
		Description: "Division, e.g. MA3",
	}
)

// RollCommand rolls dice in NdN notation.
type RollCommand struct {
	BaseCommand
	roller *Roller
}

func NewRollCommand(roller *Roller) *RollCommand {
	return &RollCommand{
		BaseCommand: BaseCommand{
			Name:        "roll",
			Description: "Rolls dice in NdN format",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "dice",
				Description: "Dice to roll, e.g. 2d6",
				Required:    true,
			}},
		},
		roller: roller,
	}
}

func (c *RollCommand) Execute(_ context.Context, opts Options) (*Reply, error) {
	out, err := c.roller.RollDice(opts.StringValue("dice"))
	if err != nil {
		return TextReply("%s", err.Error()), nil
	}
	return TextReply("%s", out), nil
}

// ChooseCommand picks one of several choices.
type ChooseCommand struct {
	BaseCommand
	roller *Roller
}

func NewChooseCommand(roller *Roller) *ChooseCommand {
	return &ChooseCommand{
		BaseCommand: BaseCommand{
			Name:        "choose",
			Description: "For when you wanna settle the score some other way",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "choices",
				Description: "Choices separated by spaces or commas",
				Required:    true,
			}},
		},
		roller: roller,
	}
}

func (c *ChooseCommand) Execute(_ context.Context, opts Options) (*Reply, error) {
	choices := SplitChoices(opts.StringValue("choices"))
	if len(choices) == 0 {
		return TextReply("%s", ErrNoChoices.Error()), nil
	}
	return TextReply("%s", c.roller.Pick(choices)), nil
}

// AddCommand adds two integers.
type AddCommand struct {
	BaseCommand
}

func NewAddCommand() *AddCommand {
	number := func(name string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        name,
			Description: "A whole number",
			Required:    true,
		}
	}
	return &AddCommand{BaseCommand: BaseCommand{
		Name:        "add",
		Description: "Adds two numbers together",
		Options:     []*discordgo.ApplicationCommandOption{number("left"), number("right")},
	}}
}

func (c *AddCommand) Execute(_ context.Context, opts Options) (*Reply, error) {
	left, ok := opts.IntValue("left")
	if !ok {
		return nil, fmt.Errorf("left: %w", errMissingInput)
	}
	right, ok := opts.IntValue("right")
	if !ok {
		return nil, fmt.Errorf("right: %w", errMissingInput)
	}
	return TextReply("%d", left+right), nil
}

// StandingsCommand shows the top of a session leaderboard.
type StandingsCommand struct {
	BaseCommand
	api StatsAPI
}

func NewStandingsCommand(api StatsAPI) *StandingsCommand {
	return &StandingsCommand{
		BaseCommand: BaseCommand{
			Name:        "standings",
			Description: "Top players of an event session",
			Options:     []*discordgo.ApplicationCommandOption{sessionOption, divisionOption},
			Defer:       true,
		},
		api: api,
	}
}

func (c *StandingsCommand) Execute(ctx context.Context, opts Options) (*Reply, error) {
	sessionID, ok := opts.IntValue("session")
	if !ok {
		return nil, fmt.Errorf("session: %w", errMissingInput)
	}
	division := strings.TrimSpace(opts.StringValue("division"))

	rows, err := c.api.Standings(ctx, sessionID, division)
	if errors.Is(err, apiclient.ErrNotFound) {
		return ErrorReply(fmt.Sprintf("Session %d not found", sessionID)), nil
	}
	if err != nil {
		return nil, err
	}
	return &Reply{Embed: StandingsEmbed(sessionID, division, rows)}, nil
}

// StandingsEmbed renders up to StandingsLimit rows.
func StandingsEmbed(sessionID int64, division string, rows []apiclient.Standing) *discordgo.MessageEmbed {
	title := fmt.Sprintf("Standings, session %d", sessionID)
	if division != "" {
		title += " (" + division + ")"
	}
	embed := &discordgo.MessageEmbed{Title: title, Color: colorOK}
	if len(rows) == 0 {
		embed.Description = "No results for this session yet."
		return embed
	}

	if len(rows) > StandingsLimit {
		rows = rows[:StandingsLimit]
	}
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. **%s** %s pts", i+1, r.Username, strconv.FormatFloat(r.Points, 'f', -1, 64))
		if division == "" && r.Division != "" {
			fmt.Fprintf(&b, " [%s]", r.Division)
		}
		fmt.Fprintf(&b, ", %d rounds", r.RoundsPlayed)
		if r.BestRoundTotal != nil {
			fmt.Fprintf(&b, ", best %d", *r.BestRoundTotal)
		}
		b.WriteByte('\n')
	}
	embed.Description = b.String()
	return embed
}

// MedianCommand shows the median round total of a session.
type MedianCommand struct {
	BaseCommand
	api StatsAPI
}

func NewMedianCommand(api StatsAPI) *MedianCommand {
	return &MedianCommand{
		BaseCommand: BaseCommand{
			Name:        "median",
			Description: "Median round score of an event session",
			Options:     []*discordgo.ApplicationCommandOption{sessionOption, divisionOption},
			Defer:       true,
		},
		api: api,
	}
}

func (c *MedianCommand) Execute(ctx context.Context, opts Options) (*Reply, error) {
	sessionID, ok := opts.IntValue("session")
	if !ok {
		return nil, fmt.Errorf("session: %w", errMissingInput)
	}
	division := strings.TrimSpace(opts.StringValue("division"))

	median, err := c.api.Median(ctx, &sessionID, division)
	if errors.Is(err, apiclient.ErrNotFound) {
		return ErrorReply(fmt.Sprintf("Session %d not found", sessionID)), nil
	}
	if err != nil {
		return nil, err
	}
	if median == nil {
		return TextReply("No rounds recorded for session %d yet.", sessionID), nil
	}

	label := fmt.Sprintf("session %d", sessionID)
	if division != "" {
		label += " " + division
	}
	return TextReply("Median round score for %s: %s", label, strconv.FormatFloat(*median, 'f', -1, 64)), nil
}
