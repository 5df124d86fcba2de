package resultdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for event result persistence and the
// aggregate queries built on it.
type Repository interface {
	List(ctx context.Context, db bun.IDB, skip, limit int) ([]*EventResult, error)
	GetByID(ctx context.Context, db bun.IDB, id int64) (*EventResult, error)
	Create(ctx context.Context, db bun.IDB, result *EventResult) error
	// Replace overwrites every column of the row with result.ID.
	Replace(ctx context.Context, db bun.IDB, result *EventResult) error
	Delete(ctx context.Context, db bun.IDB, id int64) error
	ListByUsername(ctx context.Context, db bun.IDB, username string) ([]*EventResult, error)
	ListBySession(ctx context.Context, db bun.IDB, sessionID int64, skip, limit int) ([]*EventResult, error)

	// UpsertBatch inserts rows, updating any that collide on (date, username).
	UpsertBatch(ctx context.Context, db bun.IDB, rows []*EventResult) error

	// MedianRoundScore is the median round_total_score matching filter, or
	// nil when no row matches.
	MedianRoundScore(ctx context.Context, db bun.IDB, filter MedianFilter) (*float64, error)
	Standings(ctx context.Context, db bun.IDB, sessionID int64, division string) ([]Standing, error)
	PointsHistory(ctx context.Context, db bun.IDB, sessionID int64, username string) ([]PointsOnDate, error)
}
