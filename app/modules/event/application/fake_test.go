package eventservice

import (
	"context"

	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/uptrace/bun"
)

type FakeEventRepo struct {
	trace []string

	ListFunc    func(ctx context.Context, db bun.IDB, kind eventdb.Kind, skip, limit int) ([]*eventdb.Event, error)
	GetByIDFunc func(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (*eventdb.Event, error)
	CreateFunc  func(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error
	UpdateFunc  func(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error
	DeleteFunc  func(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) error
	ExistsFunc  func(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (bool, error)
}

func NewFakeEventRepo() *FakeEventRepo {
	return &FakeEventRepo{trace: []string{}}
}

func (f *FakeEventRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventRepo) List(ctx context.Context, db bun.IDB, kind eventdb.Kind, skip, limit int) ([]*eventdb.Event, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, kind, skip, limit)
	}
	return nil, nil
}

func (f *FakeEventRepo) GetByID(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (*eventdb.Event, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, kind, id)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepo) Create(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, kind, ev)
	}
	return nil
}

func (f *FakeEventRepo) Update(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, kind, ev)
	}
	return nil
}

func (f *FakeEventRepo) Delete(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, kind, id)
	}
	return nil
}

func (f *FakeEventRepo) Exists(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, kind, id)
	}
	return false, nil
}

func (f *FakeEventRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ eventdb.Repository = (*FakeEventRepo)(nil)
