package resultservice

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/cache"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Result Repo
// ------------------------

type FakeResultRepo struct {
	trace []string

	ListFunc             func(ctx context.Context, db bun.IDB, skip, limit int) ([]*resultdb.EventResult, error)
	GetByIDFunc          func(ctx context.Context, db bun.IDB, id int64) (*resultdb.EventResult, error)
	CreateFunc           func(ctx context.Context, db bun.IDB, result *resultdb.EventResult) error
	ReplaceFunc          func(ctx context.Context, db bun.IDB, result *resultdb.EventResult) error
	DeleteFunc           func(ctx context.Context, db bun.IDB, id int64) error
	ListByUsernameFunc   func(ctx context.Context, db bun.IDB, username string) ([]*resultdb.EventResult, error)
	ListBySessionFunc    func(ctx context.Context, db bun.IDB, sessionID int64, skip, limit int) ([]*resultdb.EventResult, error)
	UpsertBatchFunc      func(ctx context.Context, db bun.IDB, rows []*resultdb.EventResult) error
	MedianRoundScoreFunc func(ctx context.Context, db bun.IDB, filter resultdb.MedianFilter) (*float64, error)
	StandingsFunc        func(ctx context.Context, db bun.IDB, sessionID int64, division string) ([]resultdb.Standing, error)
	PointsHistoryFunc    func(ctx context.Context, db bun.IDB, sessionID int64, username string) ([]resultdb.PointsOnDate, error)
}

func NewFakeResultRepo() *FakeResultRepo {
	return &FakeResultRepo{trace: []string{}}
}

func (f *FakeResultRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeResultRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeResultRepo) List(ctx context.Context, db bun.IDB, skip, limit int) ([]*resultdb.EventResult, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, skip, limit)
	}
	return nil, nil
}

func (f *FakeResultRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*resultdb.EventResult, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, resultdb.ErrNotFound
}

func (f *FakeResultRepo) Create(ctx context.Context, db bun.IDB, result *resultdb.EventResult) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, result)
	}
	return nil
}

func (f *FakeResultRepo) Replace(ctx context.Context, db bun.IDB, result *resultdb.EventResult) error {
	f.record("Replace")
	if f.ReplaceFunc != nil {
		return f.ReplaceFunc(ctx, db, result)
	}
	return nil
}

func (f *FakeResultRepo) Delete(ctx context.Context, db bun.IDB, id int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeResultRepo) ListByUsername(ctx context.Context, db bun.IDB, username string) ([]*resultdb.EventResult, error) {
	f.record("ListByUsername")
	if f.ListByUsernameFunc != nil {
		return f.ListByUsernameFunc(ctx, db, username)
	}
	return nil, nil
}

func (f *FakeResultRepo) ListBySession(ctx context.Context, db bun.IDB, sessionID int64, skip, limit int) ([]*resultdb.EventResult, error) {
	f.record("ListBySession")
	if f.ListBySessionFunc != nil {
		return f.ListBySessionFunc(ctx, db, sessionID, skip, limit)
	}
	return nil, nil
}

func (f *FakeResultRepo) UpsertBatch(ctx context.Context, db bun.IDB, rows []*resultdb.EventResult) error {
	f.record("UpsertBatch")
	if f.UpsertBatchFunc != nil {
		return f.UpsertBatchFunc(ctx, db, rows)
	}
	return nil
}

func (f *FakeResultRepo) MedianRoundScore(ctx context.Context, db bun.IDB, filter resultdb.MedianFilter) (*float64, error) {
	f.record("MedianRoundScore")
	if f.MedianRoundScoreFunc != nil {
		return f.MedianRoundScoreFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeResultRepo) Standings(ctx context.Context, db bun.IDB, sessionID int64, division string) ([]resultdb.Standing, error) {
	f.record("Standings")
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx, db, sessionID, division)
	}
	return nil, nil
}

func (f *FakeResultRepo) PointsHistory(ctx context.Context, db bun.IDB, sessionID int64, username string) ([]resultdb.PointsOnDate, error) {
	f.record("PointsHistory")
	if f.PointsHistoryFunc != nil {
		return f.PointsHistoryFunc(ctx, db, sessionID, username)
	}
	return nil, nil
}

var _ resultdb.Repository = (*FakeResultRepo)(nil)

// ------------------------
// Fake Session Checker
// ------------------------

// FakeSessions reports every id in Known as existing.
type FakeSessions struct {
	Known map[eventdb.Kind][]int64
	Err   error
}

func (f *FakeSessions) Exists(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	for _, known := range f.Known[kind] {
		if known == id {
			return true, nil
		}
	}
	return false, nil
}

var _ SessionChecker = (*FakeSessions)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type published struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	Published []published
	Err       error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Published = append(f.Published, published{Topic: topic, Payload: payload})
	return nil
}

var _ Publisher = (*FakePublisher)(nil)

// ------------------------
// Fake Cache
// ------------------------

// FakeCache keeps JSON values in a map and records deleted prefixes.
type FakeCache struct {
	Values  map[string][]byte
	Deleted []string
}

func NewFakeCache() *FakeCache {
	return &FakeCache{Values: map[string][]byte{}}
}

func (f *FakeCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := f.Values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *FakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.Values[key] = raw
	return nil
}

func (f *FakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	f.Deleted = append(f.Deleted, prefix)
	for k := range f.Values {
		if strings.HasPrefix(k, prefix) {
			delete(f.Values, k)
		}
	}
	return nil
}

var _ cache.Cache = (*FakeCache)(nil)
