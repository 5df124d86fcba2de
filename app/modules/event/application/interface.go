package eventservice

import (
	"context"

	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/timeutil"
)

// Service defines CRUD over disc events, event sessions and league sessions.
type Service interface {
	List(ctx context.Context, kind eventdb.Kind, skip, limit int) ([]*eventdb.Event, error)
	Get(ctx context.Context, kind eventdb.Kind, id int64) (*eventdb.Event, error)
	Create(ctx context.Context, kind eventdb.Kind, in CreateInput) (*eventdb.Event, error)
	// Update applies the non-nil fields of in.
	Update(ctx context.Context, kind eventdb.Kind, id int64, in UpdateInput) (*eventdb.Event, error)
	Delete(ctx context.Context, kind eventdb.Kind, id int64) error
}

// CreateInput is the body of a create request.
type CreateInput struct {
	Name        string         `json:"name"`
	StartDate   *timeutil.Date `json:"start_date"`
	EndDate     *timeutil.Date `json:"end_date"`
	Description *string        `json:"description"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string        `json:"name"`
	StartDate   *timeutil.Date `json:"start_date"`
	EndDate     *timeutil.Date `json:"end_date"`
	Description *string        `json:"description"`
}
