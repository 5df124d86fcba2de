package resultdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/dberr"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new event result repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// List returns a page of results, newest round first.
func (r *Impl) List(ctx context.Context, db bun.IDB, skip, limit int) ([]*EventResult, error) {
	db = r.resolveDB(db)
	var rows []*EventResult
	err := db.NewSelect().
		Model(&rows).
		Order("er.date DESC", "er.division ASC", "er.position_raw ASC", "er.id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event results: %w", err)
	}
	return rows, nil
}

// GetByID retrieves one result.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*EventResult, error) {
	db = r.resolveDB(db)
	row := new(EventResult)
	err := db.NewSelect().
		Model(row).
		Where("er.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event result: %w", err)
	}
	return row, nil
}

// Create inserts a result and sets its id.
func (r *Impl) Create(ctx context.Context, db bun.IDB, result *EventResult) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(result).Returning("id").Exec(ctx); err != nil {
		return classify(err, "failed to insert event result")
	}
	return nil
}

// Replace overwrites every column except id.
func (r *Impl) Replace(ctx context.Context, db bun.IDB, result *EventResult) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model(result).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	if err != nil {
		return classify(err, "failed to update event result")
	}
	return checkAffected(res)
}

// Delete removes one result.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*EventResult)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete event result: %w", err)
	}
	return checkAffected(res)
}

// ListByUsername returns every result of one player, oldest first.
func (r *Impl) ListByUsername(ctx context.Context, db bun.IDB, username string) ([]*EventResult, error) {
	db = r.resolveDB(db)
	var rows []*EventResult
	err := db.NewSelect().
		Model(&rows).
		Where("er.username = ?", username).
		Order("er.date ASC", "er.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event results by username: %w", err)
	}
	return rows, nil
}

// ListBySession returns a page of one event session's results.
func (r *Impl) ListBySession(ctx context.Context, db bun.IDB, sessionID int64, skip, limit int) ([]*EventResult, error) {
	db = r.resolveDB(db)
	var rows []*EventResult
	err := db.NewSelect().
		Model(&rows).
		Where("er.event_session_id = ?", sessionID).
		Order("er.date ASC", "er.division ASC", "er.position_raw ASC", "er.id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event results by session: %w", err)
	}
	return rows, nil
}

// UpsertBatch inserts rows in one statement. A row colliding on
// (date, username) replaces the stored one.
func (r *Impl) UpsertBatch(ctx context.Context, db bun.IDB, rows []*EventResult) error {
	if len(rows) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (date, username) DO UPDATE").
		Set("division = EXCLUDED.division").
		Set("position = EXCLUDED.position").
		Set("position_raw = EXCLUDED.position_raw").
		Set("name = EXCLUDED.name").
		Set("event_relative_score = EXCLUDED.event_relative_score").
		Set("event_total_score = EXCLUDED.event_total_score").
		Set("pdga_number = EXCLUDED.pdga_number").
		Set("round_relative_score = EXCLUDED.round_relative_score").
		Set("round_total_score = EXCLUDED.round_total_score").
		Set("round_points = EXCLUDED.round_points").
		Set("course_layout_id = EXCLUDED.course_layout_id").
		Set("event_session_id = EXCLUDED.event_session_id").
		Set("league_session_id = EXCLUDED.league_session_id").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return classify(err, "failed to upsert event results")
	}
	return nil
}

// MedianRoundScore computes the median with percentile_cont in SQL.
func (r *Impl) MedianRoundScore(ctx context.Context, db bun.IDB, filter MedianFilter) (*float64, error) {
	db = r.resolveDB(db)
	q := db.NewSelect().
		Model((*EventResult)(nil)).
		ColumnExpr("percentile_cont(0.5) WITHIN GROUP (ORDER BY er.round_total_score)")
	if filter.EventSessionID != nil {
		q = q.Where("er.event_session_id = ?", *filter.EventSessionID)
	}
	if filter.Division != nil {
		q = q.Where("er.division = ?", *filter.Division)
	}

	var median sql.NullFloat64
	if err := q.Scan(ctx, &median); err != nil {
		return nil, fmt.Errorf("failed to compute median round score: %w", err)
	}
	if !median.Valid {
		return nil, nil
	}
	return &median.Float64, nil
}

// Standings aggregates points per player and division for one session.
// An empty division includes every division.
func (r *Impl) Standings(ctx context.Context, db bun.IDB, sessionID int64, division string) ([]Standing, error) {
	db = r.resolveDB(db)
	q := db.NewSelect().
		Model((*EventResult)(nil)).
		ColumnExpr("er.username").
		ColumnExpr("er.division").
		ColumnExpr("SUM(er.round_points) AS points").
		ColumnExpr("COUNT(*) AS rounds_played").
		ColumnExpr("MIN(er.round_total_score) AS best_round_total").
		Where("er.event_session_id = ?", sessionID).
		GroupExpr("er.username, er.division").
		OrderExpr("points DESC, er.username ASC")
	if division != "" {
		q = q.Where("er.division = ?", division)
	}

	var out []Standing
	if err := q.Scan(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to compute standings: %w", err)
	}
	return out, nil
}

// PointsHistory lists a player's round points in a session by date.
func (r *Impl) PointsHistory(ctx context.Context, db bun.IDB, sessionID int64, username string) ([]PointsOnDate, error) {
	db = r.resolveDB(db)
	var out []PointsOnDate
	err := db.NewSelect().
		Model((*EventResult)(nil)).
		Column("er.date", "er.round_points").
		Where("er.event_session_id = ?", sessionID).
		Where("er.username = ?", username).
		Order("er.date ASC").
		Scan(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to load points history: %w", err)
	}
	return out, nil
}

func classify(err error, msg string) error {
	switch {
	case dberr.IsUniqueViolation(err):
		return ErrDuplicate
	case dberr.IsForeignKeyViolation(err):
		return ErrUnknownReference
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
