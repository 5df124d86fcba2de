package eventservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// EventService implements the Service interface.
type EventService struct {
	repo   eventdb.Repository
	runner *operation.Runner
}

// NewEventService creates a new EventService.
func NewEventService(
	repo eventdb.Repository,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *EventService {
	return &EventService{
		repo:   repo,
		runner: operation.NewRunner("EventService", logger, m, tracer, db),
	}
}

type eventResult = results.OperationResult[*eventdb.Event, error]

func (s *EventService) List(ctx context.Context, kind eventdb.Kind, skip, limit int) ([]*eventdb.Event, error) {
	return operation.Do(s.runner, ctx, "List", string(kind), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*eventdb.Event, error], error) {
		events, err := s.repo.List(ctx, db, kind, skip, limit)
		if err != nil {
			return results.OperationResult[[]*eventdb.Event, error]{}, err
		}
		if events == nil {
			events = []*eventdb.Event{}
		}
		return results.SuccessResult[[]*eventdb.Event, error](events), nil
	})
}

func (s *EventService) Get(ctx context.Context, kind eventdb.Kind, id int64) (*eventdb.Event, error) {
	return operation.Do(s.runner, ctx, "Get", identifier(kind, id), func(ctx context.Context, db bun.IDB) (eventResult, error) {
		ev, err := s.repo.GetByID(ctx, db, kind, id)
		if err != nil {
			if errors.Is(err, eventdb.ErrNotFound) {
				return results.FailureResult[*eventdb.Event, error](err), nil
			}
			return eventResult{}, err
		}
		return results.SuccessResult[*eventdb.Event, error](ev), nil
	})
}

func (s *EventService) Create(ctx context.Context, kind eventdb.Kind, in CreateInput) (*eventdb.Event, error) {
	return operation.Do(s.runner, ctx, "Create", string(kind)+":"+in.Name, func(ctx context.Context, db bun.IDB) (eventResult, error) {
		ev := &eventdb.Event{
			Name:        strings.TrimSpace(in.Name),
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Description: in.Description,
		}
		if err := validate(kind, ev); err != nil {
			return results.FailureResult[*eventdb.Event, error](err), nil
		}

		if err := s.repo.Create(ctx, db, kind, ev); err != nil {
			if errors.Is(err, eventdb.ErrDuplicateName) {
				return results.FailureResult[*eventdb.Event, error](err), nil
			}
			return eventResult{}, err
		}
		return results.SuccessResult[*eventdb.Event, error](ev), nil
	})
}

func (s *EventService) Update(ctx context.Context, kind eventdb.Kind, id int64, in UpdateInput) (*eventdb.Event, error) {
	return operation.Do(s.runner, ctx, "Update", identifier(kind, id), func(ctx context.Context, db bun.IDB) (eventResult, error) {
		ev, err := s.repo.GetByID(ctx, db, kind, id)
		if err != nil {
			if errors.Is(err, eventdb.ErrNotFound) {
				return results.FailureResult[*eventdb.Event, error](err), nil
			}
			return eventResult{}, err
		}

		if in.Name != nil {
			ev.Name = strings.TrimSpace(*in.Name)
		}
		if in.StartDate != nil {
			ev.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			ev.EndDate = in.EndDate
		}
		if in.Description != nil {
			ev.Description = in.Description
		}
		if err := validate(kind, ev); err != nil {
			return results.FailureResult[*eventdb.Event, error](err), nil
		}

		if err := s.repo.Update(ctx, db, kind, ev); err != nil {
			if errors.Is(err, eventdb.ErrNotFound) || errors.Is(err, eventdb.ErrDuplicateName) {
				return results.FailureResult[*eventdb.Event, error](err), nil
			}
			return eventResult{}, err
		}
		return results.SuccessResult[*eventdb.Event, error](ev), nil
	})
}

func (s *EventService) Delete(ctx context.Context, kind eventdb.Kind, id int64) error {
	_, err := operation.Do(s.runner, ctx, "Delete", identifier(kind, id), func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		if err := s.repo.Delete(ctx, db, kind, id); err != nil {
			if errors.Is(err, eventdb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	return err
}

func validate(kind eventdb.Kind, ev *eventdb.Event) error {
	if ev.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if kind.DatesRequired() && (ev.StartDate == nil || ev.EndDate == nil) {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if ev.StartDate != nil && ev.EndDate != nil && ev.EndDate.Before(*ev.StartDate) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", ErrValidation, ev.EndDate, ev.StartDate)
	}
	return nil
}

func identifier(kind eventdb.Kind, id int64) string {
	return string(kind) + ":" + strconv.FormatInt(id, 10)
}
