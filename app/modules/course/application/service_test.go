package courseservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestService(repo coursedb.Repository) *CourseService {
	return NewCourseService(repo, slog.Default(), metrics.NewNoop(), nil, nil)
}

func ptr[T any](v T) *T { return &v }

func TestCreateCourse(t *testing.T) {
	tests := []struct {
		name        string
		setupRepo   func(*FakeCourseRepo)
		input       CourseInput
		wantErr     bool
		wantErrType error
		verify      func(t *testing.T, got *coursedb.Course, f *FakeCourseRepo)
	}{
		{
			name: "creates nested layouts and holes",
			setupRepo: func(f *FakeCourseRepo) {
				f.CreateCourseFunc = func(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
					course.ID = 7
					return nil
				}
			},
			input: CourseInput{
				Name: "  Maple Hill ",
				City: ptr("Leicester"),
				Layouts: []LayoutInput{{
					Name: "Gold",
					Par:  ptr(62),
					Holes: []HoleInput{
						{HoleNumber: 1, Par: ptr(3), Distance: ptr(320.0)},
						{HoleNumber: 2, Par: ptr(4)},
					},
				}},
			},
			verify: func(t *testing.T, got *coursedb.Course, f *FakeCourseRepo) {
				assert.Equal(t, int64(7), got.ID)
				assert.Equal(t, "Maple Hill", got.Name)
				require.Len(t, got.Layouts, 1)
				assert.Equal(t, "Gold", got.Layouts[0].Name)
				require.Len(t, got.Layouts[0].Holes, 2)
				assert.Equal(t, 2, got.Layouts[0].Holes[1].HoleNumber)
				assert.Equal(t, []string{"CreateCourse"}, f.Trace())
			},
		},
		{
			name:        "missing name",
			input:       CourseInput{Name: "   "},
			wantErr:     true,
			wantErrType: ErrValidation,
		},
		{
			name: "layout without name",
			input: CourseInput{
				Name:    "Maple Hill",
				Layouts: []LayoutInput{{Name: ""}},
			},
			wantErr:     true,
			wantErrType: ErrValidation,
		},
		{
			name: "duplicate hole numbers",
			input: CourseInput{
				Name: "Maple Hill",
				Layouts: []LayoutInput{{
					Name:  "Blue",
					Holes: []HoleInput{{HoleNumber: 3}, {HoleNumber: 3}},
				}},
			},
			wantErr:     true,
			wantErrType: ErrValidation,
		},
		{
			name: "duplicate name",
			setupRepo: func(f *FakeCourseRepo) {
				f.CreateCourseFunc = func(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
					return coursedb.ErrDuplicateName
				}
			},
			input:       CourseInput{Name: "Maple Hill"},
			wantErr:     true,
			wantErrType: coursedb.ErrDuplicateName,
		},
		{
			name: "database error",
			setupRepo: func(f *FakeCourseRepo) {
				f.CreateCourseFunc = func(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
					return errors.New("connection reset")
				}
			},
			input:   CourseInput{Name: "Maple Hill"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeCourseRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(fakeRepo)
			}
			svc := newTestService(fakeRepo)

			got, err := svc.CreateCourse(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.ErrorIs(t, err, tt.wantErrType)
				}
				return
			}
			require.NoError(t, err)
			if tt.verify != nil {
				tt.verify(t, got, fakeRepo)
			}
		})
	}
}

func TestGetCourse(t *testing.T) {
	tests := []struct {
		name        string
		setupRepo   func(*FakeCourseRepo)
		wantName    string
		wantErr     bool
		wantErrType error
	}{
		{
			name: "found",
			setupRepo: func(f *FakeCourseRepo) {
				f.GetCourseByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*coursedb.Course, error) {
					return &coursedb.Course{ID: id, Name: "Maple Hill"}, nil
				}
			},
			wantName: "Maple Hill",
		},
		{
			name:        "not found",
			setupRepo:   func(f *FakeCourseRepo) {},
			wantErr:     true,
			wantErrType: coursedb.ErrNotFound,
		},
		{
			name: "database error",
			setupRepo: func(f *FakeCourseRepo) {
				f.GetCourseByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*coursedb.Course, error) {
					return nil, errors.New("database connection failed")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeCourseRepo()
			tt.setupRepo(fakeRepo)
			svc := newTestService(fakeRepo)

			got, err := svc.GetCourse(context.Background(), 3)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.ErrorIs(t, err, tt.wantErrType)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestUpdateCourse(t *testing.T) {
	t.Run("replaces fields and reloads", func(t *testing.T) {
		fakeRepo := NewFakeCourseRepo()
		var updated *coursedb.Course
		fakeRepo.UpdateCourseFunc = func(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
			updated = course
			return nil
		}
		fakeRepo.GetCourseByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*coursedb.Course, error) {
			return updated, nil
		}
		svc := newTestService(fakeRepo)

		got, err := svc.UpdateCourse(context.Background(), 4, CourseInput{Name: "Renamed", Holes: ptr(18)})

		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, 18, *got.Holes)
		assert.Equal(t, []string{"UpdateCourse", "GetCourseByID"}, fakeRepo.Trace())
	})

	t.Run("unknown id", func(t *testing.T) {
		fakeRepo := NewFakeCourseRepo()
		fakeRepo.UpdateCourseFunc = func(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
			return coursedb.ErrNotFound
		}
		svc := newTestService(fakeRepo)

		_, err := svc.UpdateCourse(context.Background(), 4, CourseInput{Name: "Renamed"})
		assert.ErrorIs(t, err, coursedb.ErrNotFound)
	})

	t.Run("name clash", func(t *testing.T) {
		fakeRepo := NewFakeCourseRepo()
		fakeRepo.UpdateCourseFunc = func(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
			return coursedb.ErrDuplicateName
		}
		svc := newTestService(fakeRepo)

		_, err := svc.UpdateCourse(context.Background(), 4, CourseInput{Name: "Taken"})
		assert.ErrorIs(t, err, coursedb.ErrDuplicateName)
	})
}

func TestDeleteCourse(t *testing.T) {
	fakeRepo := NewFakeCourseRepo()
	fakeRepo.DeleteCourseFunc = func(ctx context.Context, db bun.IDB, id int64) error {
		if id == 1 {
			return nil
		}
		return coursedb.ErrNotFound
	}
	svc := newTestService(fakeRepo)

	assert.NoError(t, svc.DeleteCourse(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteCourse(context.Background(), 2), coursedb.ErrNotFound)
}

func TestCreateLayout(t *testing.T) {
	tests := []struct {
		name        string
		setupRepo   func(*FakeCourseRepo)
		input       LayoutInput
		wantErrType error
	}{
		{
			name: "created",
			setupRepo: func(f *FakeCourseRepo) {
				f.CreateLayoutFunc = func(ctx context.Context, db bun.IDB, layout *coursedb.CourseLayout) error {
					layout.ID = 11
					return nil
				}
			},
			input: LayoutInput{CourseID: 2, Name: "Red"},
		},
		{
			name:        "missing course id",
			setupRepo:   func(f *FakeCourseRepo) {},
			input:       LayoutInput{Name: "Red"},
			wantErrType: ErrValidation,
		},
		{
			name: "unknown course",
			setupRepo: func(f *FakeCourseRepo) {
				f.CreateLayoutFunc = func(ctx context.Context, db bun.IDB, layout *coursedb.CourseLayout) error {
					return coursedb.ErrNotFound
				}
			},
			input:       LayoutInput{CourseID: 99, Name: "Red"},
			wantErrType: ErrUnknownCourse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeCourseRepo()
			tt.setupRepo(fakeRepo)
			svc := newTestService(fakeRepo)

			got, err := svc.CreateLayout(context.Background(), tt.input)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(11), got.ID)
			assert.Equal(t, tt.input.CourseID, got.CourseID)
		})
	}
}

func TestSearchLayouts(t *testing.T) {
	t.Run("empty name returns empty page without queries", func(t *testing.T) {
		fakeRepo := NewFakeCourseRepo()
		svc := newTestService(fakeRepo)

		page, err := svc.SearchLayouts(context.Background(), "  ")

		require.NoError(t, err)
		assert.Empty(t, page.CourseLayouts)
		assert.NotNil(t, page.CourseLayouts)
		assert.Equal(t, 0, page.Count)
		assert.Empty(t, fakeRepo.Trace())
	})

	t.Run("unknown course", func(t *testing.T) {
		fakeRepo := NewFakeCourseRepo()
		svc := newTestService(fakeRepo)

		_, err := svc.SearchLayouts(context.Background(), "Nowhere")
		assert.ErrorIs(t, err, coursedb.ErrNotFound)
	})

	t.Run("layouts of named course", func(t *testing.T) {
		fakeRepo := NewFakeCourseRepo()
		fakeRepo.GetCourseByNameFunc = func(ctx context.Context, db bun.IDB, name string) (*coursedb.Course, error) {
			return &coursedb.Course{ID: 5, Name: name}, nil
		}
		fakeRepo.ListLayoutsByCourseFunc = func(ctx context.Context, db bun.IDB, courseID int64) ([]*coursedb.CourseLayout, error) {
			assert.Equal(t, int64(5), courseID)
			return []*coursedb.CourseLayout{{ID: 1, CourseID: 5, Name: "Short"}, {ID: 2, CourseID: 5, Name: "Long"}}, nil
		}
		svc := newTestService(fakeRepo)

		page, err := svc.SearchLayouts(context.Background(), "Maple Hill")

		require.NoError(t, err)
		assert.Equal(t, 2, page.Count)
		assert.Equal(t, "Long", page.CourseLayouts[1].Name)
	})
}

func TestListLayouts(t *testing.T) {
	fakeRepo := NewFakeCourseRepo()
	fakeRepo.ListLayoutsFunc = func(ctx context.Context, db bun.IDB, skip, limit int) ([]*coursedb.CourseLayout, int, error) {
		assert.Equal(t, 10, skip)
		assert.Equal(t, 5, limit)
		return []*coursedb.CourseLayout{{ID: 11}}, 12, nil
	}
	svc := newTestService(fakeRepo)

	page, err := svc.ListLayouts(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.Len(t, page.CourseLayouts, 1)
	assert.Equal(t, 12, page.Count)
}

func TestListCourses_EmptyIsNotNil(t *testing.T) {
	svc := newTestService(NewFakeCourseRepo())

	got, err := svc.ListCourses(context.Background(), 0, 100)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
