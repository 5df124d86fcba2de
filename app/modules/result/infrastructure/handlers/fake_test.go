package resulthandlers

import (
	"context"

	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
)

// FakeService implements resultservice.Service for handler tests.
type FakeService struct {
	ListFunc              func(ctx context.Context, skip, limit int) ([]*resultdb.EventResult, error)
	GetFunc               func(ctx context.Context, id int64) (*resultdb.EventResult, error)
	CreateFunc            func(ctx context.Context, in resultservice.ResultInput) (*resultdb.EventResult, error)
	ReplaceFunc           func(ctx context.Context, id int64, in resultservice.ResultInput) (*resultdb.EventResult, error)
	DeleteFunc            func(ctx context.Context, id int64) error
	ListByUsernameFunc    func(ctx context.Context, username string) ([]*resultdb.EventResult, error)
	ListBySessionFunc     func(ctx context.Context, sessionID int64, skip, limit int) ([]*resultdb.EventResult, error)
	MedianFunc            func(ctx context.Context, q resultservice.MedianQuery) (*float64, error)
	ImportFunc            func(ctx context.Context, req resultservice.ImportRequest) (*resultservice.ImportSummary, error)
	StandingsFunc         func(ctx context.Context, sessionID int64, division string) ([]resultdb.Standing, error)
	PointsChartFunc       func(ctx context.Context, sessionID int64, username string) ([]byte, error)
	InvalidateSessionFunc func(ctx context.Context, sessionID *int64) error
}

func (f *FakeService) List(ctx context.Context, skip, limit int) ([]*resultdb.EventResult, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, skip, limit)
	}
	return []*resultdb.EventResult{}, nil
}

func (f *FakeService) Get(ctx context.Context, id int64) (*resultdb.EventResult, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return nil, resultdb.ErrNotFound
}

func (f *FakeService) Create(ctx context.Context, in resultservice.ResultInput) (*resultdb.EventResult, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, in)
	}
	return &resultdb.EventResult{}, nil
}

func (f *FakeService) Replace(ctx context.Context, id int64, in resultservice.ResultInput) (*resultdb.EventResult, error) {
	if f.ReplaceFunc != nil {
		return f.ReplaceFunc(ctx, id, in)
	}
	return &resultdb.EventResult{ID: id}, nil
}

func (f *FakeService) Delete(ctx context.Context, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ListByUsername(ctx context.Context, username string) ([]*resultdb.EventResult, error) {
	if f.ListByUsernameFunc != nil {
		return f.ListByUsernameFunc(ctx, username)
	}
	return []*resultdb.EventResult{}, nil
}

func (f *FakeService) ListBySession(ctx context.Context, sessionID int64, skip, limit int) ([]*resultdb.EventResult, error) {
	if f.ListBySessionFunc != nil {
		return f.ListBySessionFunc(ctx, sessionID, skip, limit)
	}
	return []*resultdb.EventResult{}, nil
}

func (f *FakeService) Median(ctx context.Context, q resultservice.MedianQuery) (*float64, error) {
	if f.MedianFunc != nil {
		return f.MedianFunc(ctx, q)
	}
	return nil, nil
}

func (f *FakeService) Import(ctx context.Context, req resultservice.ImportRequest) (*resultservice.ImportSummary, error) {
	if f.ImportFunc != nil {
		return f.ImportFunc(ctx, req)
	}
	return &resultservice.ImportSummary{}, nil
}

func (f *FakeService) Standings(ctx context.Context, sessionID int64, division string) ([]resultdb.Standing, error) {
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx, sessionID, division)
	}
	return []resultdb.Standing{}, nil
}

func (f *FakeService) PointsChart(ctx context.Context, sessionID int64, username string) ([]byte, error) {
	if f.PointsChartFunc != nil {
		return f.PointsChartFunc(ctx, sessionID, username)
	}
	return []byte("\x89PNG"), nil
}

func (f *FakeService) InvalidateSession(ctx context.Context, sessionID *int64) error {
	if f.InvalidateSessionFunc != nil {
		return f.InvalidateSessionFunc(ctx, sessionID)
	}
	return nil
}

var _ resultservice.Service = (*FakeService)(nil)

// FakeQueue records enqueued imports.
type FakeQueue struct {
	Enqueued []resultservice.ImportRequest
	JobID    int64
	Err      error
}

func (f *FakeQueue) EnqueueImport(ctx context.Context, req resultservice.ImportRequest) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.Enqueued = append(f.Enqueued, req)
	return f.JobID, nil
}

var _ ImportQueue = (*FakeQueue)(nil)
