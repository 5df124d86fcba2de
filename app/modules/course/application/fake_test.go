package courseservice

import (
	"context"

	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Course Repo
// ------------------------

type FakeCourseRepo struct {
	trace []string

	ListCoursesFunc         func(ctx context.Context, db bun.IDB, skip, limit int) ([]*coursedb.Course, error)
	GetCourseByIDFunc       func(ctx context.Context, db bun.IDB, id int64) (*coursedb.Course, error)
	GetCourseByNameFunc     func(ctx context.Context, db bun.IDB, name string) (*coursedb.Course, error)
	CreateCourseFunc        func(ctx context.Context, db bun.IDB, course *coursedb.Course) error
	UpdateCourseFunc        func(ctx context.Context, db bun.IDB, course *coursedb.Course) error
	DeleteCourseFunc        func(ctx context.Context, db bun.IDB, id int64) error
	ListLayoutsFunc         func(ctx context.Context, db bun.IDB, skip, limit int) ([]*coursedb.CourseLayout, int, error)
	ListLayoutsByCourseFunc func(ctx context.Context, db bun.IDB, courseID int64) ([]*coursedb.CourseLayout, error)
	GetLayoutByIDFunc       func(ctx context.Context, db bun.IDB, id int64) (*coursedb.CourseLayout, error)
	CreateLayoutFunc        func(ctx context.Context, db bun.IDB, layout *coursedb.CourseLayout) error
	DeleteLayoutFunc        func(ctx context.Context, db bun.IDB, id int64) error
}

func NewFakeCourseRepo() *FakeCourseRepo {
	return &FakeCourseRepo{trace: []string{}}
}

func (f *FakeCourseRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCourseRepo) ListCourses(ctx context.Context, db bun.IDB, skip, limit int) ([]*coursedb.Course, error) {
	f.record("ListCourses")
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx, db, skip, limit)
	}
	return nil, nil
}

func (f *FakeCourseRepo) GetCourseByID(ctx context.Context, db bun.IDB, id int64) (*coursedb.Course, error) {
	f.record("GetCourseByID")
	if f.GetCourseByIDFunc != nil {
		return f.GetCourseByIDFunc(ctx, db, id)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) GetCourseByName(ctx context.Context, db bun.IDB, name string) (*coursedb.Course, error) {
	f.record("GetCourseByName")
	if f.GetCourseByNameFunc != nil {
		return f.GetCourseByNameFunc(ctx, db, name)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) CreateCourse(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
	f.record("CreateCourse")
	if f.CreateCourseFunc != nil {
		return f.CreateCourseFunc(ctx, db, course)
	}
	return nil
}

func (f *FakeCourseRepo) UpdateCourse(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
	f.record("UpdateCourse")
	if f.UpdateCourseFunc != nil {
		return f.UpdateCourseFunc(ctx, db, course)
	}
	return nil
}

func (f *FakeCourseRepo) DeleteCourse(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeleteCourse")
	if f.DeleteCourseFunc != nil {
		return f.DeleteCourseFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeCourseRepo) ListLayouts(ctx context.Context, db bun.IDB, skip, limit int) ([]*coursedb.CourseLayout, int, error) {
	f.record("ListLayouts")
	if f.ListLayoutsFunc != nil {
		return f.ListLayoutsFunc(ctx, db, skip, limit)
	}
	return nil, 0, nil
}

func (f *FakeCourseRepo) ListLayoutsByCourse(ctx context.Context, db bun.IDB, courseID int64) ([]*coursedb.CourseLayout, error) {
	f.record("ListLayoutsByCourse")
	if f.ListLayoutsByCourseFunc != nil {
		return f.ListLayoutsByCourseFunc(ctx, db, courseID)
	}
	return nil, nil
}

func (f *FakeCourseRepo) GetLayoutByID(ctx context.Context, db bun.IDB, id int64) (*coursedb.CourseLayout, error) {
	f.record("GetLayoutByID")
	if f.GetLayoutByIDFunc != nil {
		return f.GetLayoutByIDFunc(ctx, db, id)
	}
	return nil, coursedb.ErrLayoutNotFound
}

func (f *FakeCourseRepo) CreateLayout(ctx context.Context, db bun.IDB, layout *coursedb.CourseLayout) error {
	f.record("CreateLayout")
	if f.CreateLayoutFunc != nil {
		return f.CreateLayoutFunc(ctx, db, layout)
	}
	return nil
}

func (f *FakeCourseRepo) DeleteLayout(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeleteLayout")
	if f.DeleteLayoutFunc != nil {
		return f.DeleteLayoutFunc(ctx, db, id)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeCourseRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ coursedb.Repository = (*FakeCourseRepo)(nil)
