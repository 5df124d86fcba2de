package eventservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func date(t *testing.T, s string) *timeutil.Date {
	t.Helper()
	d, err := timeutil.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func strPtr(s string) *string { return &s }

func newTestService(repo eventdb.Repository) *EventService {
	return NewEventService(repo, slog.Default(), metrics.NewNoop(), nil, nil)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		kind        eventdb.Kind
		input       func(t *testing.T) CreateInput
		setupRepo   func(*FakeEventRepo)
		wantErr     bool
		wantErrType error
	}{
		{
			name: "event session",
			kind: eventdb.KindEventSession,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: "Spring 2024", StartDate: date(t, "2024-03-01"), EndDate: date(t, "2024-05-31")}
			},
			setupRepo: func(f *FakeEventRepo) {
				f.CreateFunc = func(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error {
					assert.Equal(t, eventdb.KindEventSession, kind)
					ev.ID = 3
					return nil
				}
			},
		},
		{
			name: "league session without dates",
			kind: eventdb.KindLeagueSession,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: "Weeknight league"}
			},
		},
		{
			name: "disc event requires dates",
			kind: eventdb.KindDiscEvent,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: "Open", StartDate: date(t, "2024-03-01")}
			},
			wantErr:     true,
			wantErrType: ErrValidation,
		},
		{
			name: "missing name",
			kind: eventdb.KindLeagueSession,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: " "}
			},
			wantErr:     true,
			wantErrType: ErrValidation,
		},
		{
			name: "end before start",
			kind: eventdb.KindEventSession,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: "Backwards", StartDate: date(t, "2024-05-01"), EndDate: date(t, "2024-04-01")}
			},
			wantErr:     true,
			wantErrType: ErrValidation,
		},
		{
			name: "duplicate name",
			kind: eventdb.KindLeagueSession,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: "Weeknight league"}
			},
			setupRepo: func(f *FakeEventRepo) {
				f.CreateFunc = func(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error {
					return eventdb.ErrDuplicateName
				}
			},
			wantErr:     true,
			wantErrType: eventdb.ErrDuplicateName,
		},
		{
			name: "database error",
			kind: eventdb.KindLeagueSession,
			input: func(t *testing.T) CreateInput {
				return CreateInput{Name: "Weeknight league"}
			},
			setupRepo: func(f *FakeEventRepo) {
				f.CreateFunc = func(ctx context.Context, db bun.IDB, kind eventdb.Kind, ev *eventdb.Event) error {
					return errors.New("connection refused")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeEventRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(fakeRepo)
			}
			svc := newTestService(fakeRepo)

			got, err := svc.Create(context.Background(), tt.kind, tt.input(t))

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.ErrorIs(t, err, tt.wantErrType)
				}
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.Name)
		})
	}
}

func TestUpdate_Partial(t *testing.T) {
	existing := func() *eventdb.Event {
		start, _ := timeutil.ParseDate("2024-03-01")
		end, _ := timeutil.ParseDate("2024-05-31")
		return &eventdb.Event{ID: 5, Name: "Spring", StartDate: &start, EndDate: &end, Description: strPtr("weekly")}
	}

	tests := []struct {
		name        string
		input       func(t *testing.T) UpdateInput
		wantErrType error
		verify      func(t *testing.T, got *eventdb.Event)
	}{
		{
			name: "absent fields unchanged",
			input: func(t *testing.T) UpdateInput {
				return UpdateInput{Description: strPtr("bi-weekly")}
			},
			verify: func(t *testing.T, got *eventdb.Event) {
				assert.Equal(t, "Spring", got.Name)
				assert.Equal(t, "2024-03-01", got.StartDate.String())
				assert.Equal(t, "bi-weekly", *got.Description)
			},
		},
		{
			name: "rename and move end",
			input: func(t *testing.T) UpdateInput {
				return UpdateInput{Name: strPtr("Spring Series"), EndDate: date(t, "2024-06-30")}
			},
			verify: func(t *testing.T, got *eventdb.Event) {
				assert.Equal(t, "Spring Series", got.Name)
				assert.Equal(t, "2024-06-30", got.EndDate.String())
			},
		},
		{
			name: "end moved before start",
			input: func(t *testing.T) UpdateInput {
				return UpdateInput{EndDate: date(t, "2024-01-01")}
			},
			wantErrType: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeEventRepo()
			fakeRepo.GetByIDFunc = func(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (*eventdb.Event, error) {
				return existing(), nil
			}
			svc := newTestService(fakeRepo)

			got, err := svc.Update(context.Background(), eventdb.KindEventSession, 5, tt.input(t))

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Equal(t, []string{"GetByID"}, fakeRepo.Trace())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"GetByID", "Update"}, fakeRepo.Trace())
			tt.verify(t, got)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(NewFakeEventRepo())

	_, err := svc.Update(context.Background(), eventdb.KindDiscEvent, 1, UpdateInput{Name: strPtr("x")})

	assert.ErrorIs(t, err, eventdb.ErrNotFound)
}

func TestGetAndDelete(t *testing.T) {
	fakeRepo := NewFakeEventRepo()
	fakeRepo.GetByIDFunc = func(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (*eventdb.Event, error) {
		if id == 1 {
			return &eventdb.Event{ID: 1, Name: "Open"}, nil
		}
		return nil, eventdb.ErrNotFound
	}
	fakeRepo.DeleteFunc = func(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) error {
		if id == 1 {
			return nil
		}
		return eventdb.ErrNotFound
	}
	svc := newTestService(fakeRepo)
	ctx := context.Background()

	got, err := svc.Get(ctx, eventdb.KindDiscEvent, 1)
	require.NoError(t, err)
	assert.Equal(t, "Open", got.Name)

	_, err = svc.Get(ctx, eventdb.KindDiscEvent, 2)
	assert.ErrorIs(t, err, eventdb.ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, eventdb.KindDiscEvent, 1))
	assert.ErrorIs(t, svc.Delete(ctx, eventdb.KindDiscEvent, 2), eventdb.ErrNotFound)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := newTestService(NewFakeEventRepo())

	got, err := svc.List(context.Background(), eventdb.KindLeagueSession, 0, 10)

	require.NoError(t, err)
	assert.NotNil(t, got)
}
