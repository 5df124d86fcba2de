package eventhandlers

import (
	"context"

	eventservice "github.com/Black-And-White-Club/frolf-stats/app/modules/event/application"
	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
)

// FakeService implements eventservice.Service for handler tests.
type FakeService struct {
	ListFunc   func(ctx context.Context, kind eventdb.Kind, skip, limit int) ([]*eventdb.Event, error)
	GetFunc    func(ctx context.Context, kind eventdb.Kind, id int64) (*eventdb.Event, error)
	CreateFunc func(ctx context.Context, kind eventdb.Kind, in eventservice.CreateInput) (*eventdb.Event, error)
	UpdateFunc func(ctx context.Context, kind eventdb.Kind, id int64, in eventservice.UpdateInput) (*eventdb.Event, error)
	DeleteFunc func(ctx context.Context, kind eventdb.Kind, id int64) error
}

func (f *FakeService) List(ctx context.Context, kind eventdb.Kind, skip, limit int) ([]*eventdb.Event, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, kind, skip, limit)
	}
	return []*eventdb.Event{}, nil
}

func (f *FakeService) Get(ctx context.Context, kind eventdb.Kind, id int64) (*eventdb.Event, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, kind, id)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeService) Create(ctx context.Context, kind eventdb.Kind, in eventservice.CreateInput) (*eventdb.Event, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, kind, in)
	}
	return &eventdb.Event{ID: 1, Name: in.Name}, nil
}

func (f *FakeService) Update(ctx context.Context, kind eventdb.Kind, id int64, in eventservice.UpdateInput) (*eventdb.Event, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, kind, id, in)
	}
	return &eventdb.Event{ID: id}, nil
}

func (f *FakeService) Delete(ctx context.Context, kind eventdb.Kind, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, kind, id)
	}
	return nil
}

var _ eventservice.Service = (*FakeService)(nil)
