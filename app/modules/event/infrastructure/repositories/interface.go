package eventdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for disc event and session persistence.
type Repository interface {
	List(ctx context.Context, db bun.IDB, kind Kind, skip, limit int) ([]*Event, error)
	GetByID(ctx context.Context, db bun.IDB, kind Kind, id int64) (*Event, error)
	Create(ctx context.Context, db bun.IDB, kind Kind, ev *Event) error
	Update(ctx context.Context, db bun.IDB, kind Kind, ev *Event) error
	Delete(ctx context.Context, db bun.IDB, kind Kind, id int64) error
	// Exists reports whether a row with id exists, without loading it.
	Exists(ctx context.Context, db bun.IDB, kind Kind, id int64) (bool, error)
}
