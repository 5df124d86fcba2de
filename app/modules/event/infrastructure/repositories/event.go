package eventdb

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

// NewRepository creates a new event repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func table(kind Kind) (bun.Ident, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return bun.Ident(kind), nil
}

// List returns a page of rows ordered by start date, then id.
func (r *Impl) List(ctx context.Context, db bun.IDB, kind Kind, skip, limit int) ([]*Event, error) {
	db = r.resolveDB(db)
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	var events []*Event
	err = db.NewSelect().
		Model(&events).
		ModelTableExpr("? AS e", t).
		OrderExpr("e.start_date ASC NULLS LAST, e.id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return events, nil
}

// GetByID retrieves one row.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, kind Kind, id int64) (*Event, error) {
	db = r.resolveDB(db)
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	ev := new(Event)
	err = db.NewSelect().
		Model(ev).
		ModelTableExpr("? AS e", t).
		Where("e.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s by id: %w", kind, err)
	}
	return ev, nil
}

// Create inserts ev and sets its id.
func (r *Impl) Create(ctx context.Context, db bun.IDB, kind Kind, ev *Event) error {
	db = r.resolveDB(db)
	t, err := table(kind)
	if err != nil {
		return err
	}
	_, err = db.NewInsert().
		Model(ev).
		ModelTableExpr("?", t).
		Returning("id").
		Exec(ctx)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to insert %s: %w", kind, err)
	}
	return nil
}

// Update writes every column of ev.
func (r *Impl) Update(ctx context.Context, db bun.IDB, kind Kind, ev *Event) error {
	db = r.resolveDB(db)
	t, err := table(kind)
	if err != nil {
		return err
	}
	res, err := db.NewUpdate().
		Model(ev).
		ModelTableExpr("?", t).
		Column("name", "start_date", "end_date", "description").
		Where("id = ?", ev.ID).
		Exec(ctx)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}
	return checkAffected(res)
}

// Delete removes one row. Results referencing it keep a null session id.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, kind Kind, id int64) error {
	db = r.resolveDB(db)
	t, err := table(kind)
	if err != nil {
		return err
	}
	res, err := db.NewDelete().
		Model((*Event)(nil)).
		ModelTableExpr("?", t).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return checkAffected(res)
}

// Exists reports whether id is present in the kind's table.
func (r *Impl) Exists(ctx context.Context, db bun.IDB, kind Kind, id int64) (bool, error) {
	db = r.resolveDB(db)
	t, err := table(kind)
	if err != nil {
		return false, err
	}
	ok, err := db.NewSelect().
		Model((*Event)(nil)).
		ModelTableExpr("? AS e", t).
		Where("e.id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check %s exists: %w", kind, err)
	}
	return ok, nil
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
