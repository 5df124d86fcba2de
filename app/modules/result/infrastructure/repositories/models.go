package resultdb

import (
	"time"

	"github.com/uptrace/bun"
)

// EventResult is one player's round in one division.
type EventResult struct {
	bun.BaseModel `bun:"table:event_results,alias:er"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	Date               time.Time `bun:"date,notnull" json:"date"`
	Division           string    `bun:"division,notnull" json:"division"`
	Position           string    `bun:"position,notnull" json:"position"`
	PositionRaw        *float64  `bun:"position_raw" json:"position_raw"`
	Name               string    `bun:"name,notnull" json:"name"`
	EventRelativeScore *int      `bun:"event_relative_score" json:"event_relative_score"`
	EventTotalScore    *int      `bun:"event_total_score" json:"event_total_score"`
	PDGANumber         *int64    `bun:"pdga_number" json:"pdga_number"`
	Username           string    `bun:"username,notnull" json:"username"`
	RoundRelativeScore *int      `bun:"round_relative_score" json:"round_relative_score"`
	RoundTotalScore    *int      `bun:"round_total_score" json:"round_total_score"`
	RoundPoints        float64   `bun:"round_points,notnull" json:"round_points"`
	CourseLayoutID     int64     `bun:"course_layout_id,notnull" json:"course_layout_id"`
	EventSessionID     *int64    `bun:"event_session_id" json:"event_session_id"`
	LeagueSessionID    *int64    `bun:"league_session_id" json:"league_session_id"`
}

// Standing is one row of a session league table.
type Standing struct {
	Username       string  `bun:"username" json:"username"`
	Division       string  `bun:"division" json:"division"`
	Points         float64 `bun:"points" json:"points"`
	RoundsPlayed   int     `bun:"rounds_played" json:"rounds_played"`
	BestRoundTotal *int    `bun:"best_round_total" json:"best_round_total"`
}

// PointsOnDate is a player's points for the round played on Date.
type PointsOnDate struct {
	Date   time.Time `bun:"date"`
	Points float64   `bun:"round_points"`
}

// MedianFilter narrows a median query. Nil fields match everything.
type MedianFilter struct {
	EventSessionID *int64
	Division       *string
}
