package resultservice

import (
	"context"
	"time"

	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
)

// TopicResultsImported is published after an import commits.
const TopicResultsImported = "event_results.imported.v1"

// Service defines event result CRUD, imports and the derived views.
type Service interface {
	List(ctx context.Context, skip, limit int) ([]*resultdb.EventResult, error)
	Get(ctx context.Context, id int64) (*resultdb.EventResult, error)
	Create(ctx context.Context, in ResultInput) (*resultdb.EventResult, error)
	Replace(ctx context.Context, id int64, in ResultInput) (*resultdb.EventResult, error)
	Delete(ctx context.Context, id int64) error
	ListByUsername(ctx context.Context, username string) ([]*resultdb.EventResult, error)
	ListBySession(ctx context.Context, sessionID int64, skip, limit int) ([]*resultdb.EventResult, error)
	Median(ctx context.Context, q MedianQuery) (*float64, error)

	Import(ctx context.Context, req ImportRequest) (*ImportSummary, error)

	Standings(ctx context.Context, sessionID int64, division string) ([]resultdb.Standing, error)
	// PointsChart renders a PNG of a player's cumulative points in a session.
	PointsChart(ctx context.Context, sessionID int64, username string) ([]byte, error)

	// InvalidateSession drops cached medians and standings touching a
	// session. A nil id drops everything.
	InvalidateSession(ctx context.Context, sessionID *int64) error
}

// ResultInput is the writable body of an event result.
type ResultInput struct {
	Date               time.Time `json:"date"`
	Division           string    `json:"division"`
	Position           string    `json:"position"`
	PositionRaw        *float64  `json:"position_raw"`
	Name               string    `json:"name"`
	EventRelativeScore *int      `json:"event_relative_score"`
	EventTotalScore    *int      `json:"event_total_score"`
	PDGANumber         *int64    `json:"pdga_number"`
	Username           string    `json:"username"`
	RoundRelativeScore *int      `json:"round_relative_score"`
	RoundTotalScore    *int      `json:"round_total_score"`
	RoundPoints        float64   `json:"round_points"`
	CourseLayoutID     int64     `json:"course_layout_id"`
	EventSessionID     *int64    `json:"event_session_id"`
	LeagueSessionID    *int64    `json:"league_session_id"`
}

// MedianQuery filters the median round score. Nil fields match all rows.
type MedianQuery struct {
	EventSessionID *int64
	Division       *string
}

// ImportRequest is one uploaded results file. It is also the payload of
// queued import jobs, so it must stay JSON-serializable.
type ImportRequest struct {
	Filename        string   `json:"filename"`
	Data            []byte   `json:"data"`
	Date            string   `json:"date,omitempty"`
	CourseLayoutID  int64    `json:"course_layout_id"`
	EventSessionID  *int64   `json:"event_session_id,omitempty"`
	LeagueSessionID *int64   `json:"league_session_id,omitempty"`
	MaxPoints       *float64 `json:"max_points,omitempty"`
}

// ImportSummary reports what an import stored.
type ImportSummary struct {
	Imported int `json:"imported"`
	Scored   int `json:"scored"`
	Unranked int `json:"unranked"`
	// Skipped counts rows without a player or repeating one already seen.
	Skipped   int       `json:"skipped"`
	Date      time.Time `json:"date"`
	Divisions []string  `json:"divisions"`
}

// ImportedEvent is the payload of TopicResultsImported.
type ImportedEvent struct {
	EventSessionID  *int64    `json:"event_session_id,omitempty"`
	LeagueSessionID *int64    `json:"league_session_id,omitempty"`
	Date            time.Time `json:"date"`
	Divisions       []string  `json:"divisions"`
	Rows            int       `json:"rows"`
}
