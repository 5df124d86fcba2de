package coursehandlers

import (
	"context"

	courseservice "github.com/Black-And-White-Club/frolf-stats/app/modules/course/application"
	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
)

// FakeService implements courseservice.Service for handler tests.
type FakeService struct {
	ListCoursesFunc     func(ctx context.Context, skip, limit int) ([]*coursedb.Course, error)
	GetCourseFunc       func(ctx context.Context, id int64) (*coursedb.Course, error)
	GetCourseByNameFunc func(ctx context.Context, name string) (*coursedb.Course, error)
	CreateCourseFunc    func(ctx context.Context, in courseservice.CourseInput) (*coursedb.Course, error)
	UpdateCourseFunc    func(ctx context.Context, id int64, in courseservice.CourseInput) (*coursedb.Course, error)
	DeleteCourseFunc    func(ctx context.Context, id int64) error
	ListLayoutsFunc     func(ctx context.Context, skip, limit int) (*courseservice.LayoutPage, error)
	GetLayoutFunc       func(ctx context.Context, id int64) (*coursedb.CourseLayout, error)
	CreateLayoutFunc    func(ctx context.Context, in courseservice.LayoutInput) (*coursedb.CourseLayout, error)
	DeleteLayoutFunc    func(ctx context.Context, id int64) error
	SearchLayoutsFunc   func(ctx context.Context, courseName string) (*courseservice.LayoutPage, error)
}

func (f *FakeService) ListCourses(ctx context.Context, skip, limit int) ([]*coursedb.Course, error) {
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx, skip, limit)
	}
	return []*coursedb.Course{}, nil
}

func (f *FakeService) GetCourse(ctx context.Context, id int64) (*coursedb.Course, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, id)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeService) GetCourseByName(ctx context.Context, name string) (*coursedb.Course, error) {
	if f.GetCourseByNameFunc != nil {
		return f.GetCourseByNameFunc(ctx, name)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeService) CreateCourse(ctx context.Context, in courseservice.CourseInput) (*coursedb.Course, error) {
	if f.CreateCourseFunc != nil {
		return f.CreateCourseFunc(ctx, in)
	}
	return &coursedb.Course{ID: 1, Name: in.Name}, nil
}

func (f *FakeService) UpdateCourse(ctx context.Context, id int64, in courseservice.CourseInput) (*coursedb.Course, error) {
	if f.UpdateCourseFunc != nil {
		return f.UpdateCourseFunc(ctx, id, in)
	}
	return &coursedb.Course{ID: id, Name: in.Name}, nil
}

func (f *FakeService) DeleteCourse(ctx context.Context, id int64) error {
	if f.DeleteCourseFunc != nil {
		return f.DeleteCourseFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ListLayouts(ctx context.Context, skip, limit int) (*courseservice.LayoutPage, error) {
	if f.ListLayoutsFunc != nil {
		return f.ListLayoutsFunc(ctx, skip, limit)
	}
	return &courseservice.LayoutPage{CourseLayouts: []*coursedb.CourseLayout{}}, nil
}

func (f *FakeService) GetLayout(ctx context.Context, id int64) (*coursedb.CourseLayout, error) {
	if f.GetLayoutFunc != nil {
		return f.GetLayoutFunc(ctx, id)
	}
	return nil, coursedb.ErrLayoutNotFound
}

func (f *FakeService) CreateLayout(ctx context.Context, in courseservice.LayoutInput) (*coursedb.CourseLayout, error) {
	if f.CreateLayoutFunc != nil {
		return f.CreateLayoutFunc(ctx, in)
	}
	return &coursedb.CourseLayout{ID: 1, CourseID: in.CourseID, Name: in.Name}, nil
}

func (f *FakeService) DeleteLayout(ctx context.Context, id int64) error {
	if f.DeleteLayoutFunc != nil {
		return f.DeleteLayoutFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) SearchLayouts(ctx context.Context, courseName string) (*courseservice.LayoutPage, error) {
	if f.SearchLayoutsFunc != nil {
		return f.SearchLayoutsFunc(ctx, courseName)
	}
	return &courseservice.LayoutPage{CourseLayouts: []*coursedb.CourseLayout{}}, nil
}

var _ courseservice.Service = (*FakeService)(nil)
