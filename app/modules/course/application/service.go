package courseservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// CourseService implements the Service interface.
type CourseService struct {
	repo   coursedb.Repository
	runner *operation.Runner
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	repo coursedb.Repository,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CourseService {
	return &CourseService{
		repo:   repo,
		runner: operation.NewRunner("CourseService", logger, m, tracer, db),
	}
}

type courseResult = results.OperationResult[*coursedb.Course, error]

// ListCourses returns a page of courses with their layouts.
func (s *CourseService) ListCourses(ctx context.Context, skip, limit int) ([]*coursedb.Course, error) {
	return operation.Do(s.runner, ctx, "ListCourses", strconv.Itoa(skip), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*coursedb.Course, error], error) {
		courses, err := s.repo.ListCourses(ctx, db, skip, limit)
		if err != nil {
			return results.OperationResult[[]*coursedb.Course, error]{}, err
		}
		if courses == nil {
			courses = []*coursedb.Course{}
		}
		return results.SuccessResult[[]*coursedb.Course, error](courses), nil
	})
}

// GetCourse retrieves a course by id.
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*coursedb.Course, error) {
	return operation.Do(s.runner, ctx, "GetCourse", idString(id), func(ctx context.Context, db bun.IDB) (courseResult, error) {
		return lookup(s.repo.GetCourseByID(ctx, db, id))
	})
}

// GetCourseByName retrieves a course by its unique name.
func (s *CourseService) GetCourseByName(ctx context.Context, name string) (*coursedb.Course, error) {
	return operation.Do(s.runner, ctx, "GetCourseByName", name, func(ctx context.Context, db bun.IDB) (courseResult, error) {
		return lookup(s.repo.GetCourseByName(ctx, db, name))
	})
}

// CreateCourse inserts a course with its nested layouts and holes in one
// transaction.
func (s *CourseService) CreateCourse(ctx context.Context, in CourseInput) (*coursedb.Course, error) {
	return operation.Do(s.runner, ctx, "CreateCourse", in.Name, func(ctx context.Context, db bun.IDB) (courseResult, error) {
		if err := validateCourse(in); err != nil {
			return results.FailureResult[*coursedb.Course, error](err), nil
		}
		for i, l := range in.Layouts {
			if err := validateLayout(l); err != nil {
				return results.FailureResult[*coursedb.Course, error](fmt.Errorf("layouts[%d]: %w", i, err)), nil
			}
		}

		course := courseFromInput(in)
		for _, l := range in.Layouts {
			course.Layouts = append(course.Layouts, layoutFromInput(l))
		}

		if err := s.repo.CreateCourse(ctx, db, course); err != nil {
			if errors.Is(err, coursedb.ErrDuplicateName) {
				return results.FailureResult[*coursedb.Course, error](err), nil
			}
			return courseResult{}, err
		}
		return results.SuccessResult[*coursedb.Course, error](course), nil
	})
}

// UpdateCourse replaces every course field.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, in CourseInput) (*coursedb.Course, error) {
	return operation.Do(s.runner, ctx, "UpdateCourse", idString(id), func(ctx context.Context, db bun.IDB) (courseResult, error) {
		if err := validateCourse(in); err != nil {
			return results.FailureResult[*coursedb.Course, error](err), nil
		}

		course := courseFromInput(in)
		course.ID = id
		if err := s.repo.UpdateCourse(ctx, db, course); err != nil {
			if errors.Is(err, coursedb.ErrNotFound) || errors.Is(err, coursedb.ErrDuplicateName) {
				return results.FailureResult[*coursedb.Course, error](err), nil
			}
			return courseResult{}, err
		}
		return lookup(s.repo.GetCourseByID(ctx, db, id))
	})
}

// DeleteCourse removes a course and everything under it.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	_, err := operation.Do(s.runner, ctx, "DeleteCourse", idString(id), func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		return deleted(s.repo.DeleteCourse(ctx, db, id), coursedb.ErrNotFound)
	})
	return err
}

// ListLayouts returns a page of layouts and the total count.
func (s *CourseService) ListLayouts(ctx context.Context, skip, limit int) (*LayoutPage, error) {
	return operation.Do(s.runner, ctx, "ListLayouts", strconv.Itoa(skip), func(ctx context.Context, db bun.IDB) (results.OperationResult[*LayoutPage, error], error) {
		layouts, count, err := s.repo.ListLayouts(ctx, db, skip, limit)
		if err != nil {
			return results.OperationResult[*LayoutPage, error]{}, err
		}
		return results.SuccessResult[*LayoutPage, error](newLayoutPage(layouts, count)), nil
	})
}

// GetLayout returns a layout with its holes.
func (s *CourseService) GetLayout(ctx context.Context, id int64) (*coursedb.CourseLayout, error) {
	return operation.Do(s.runner, ctx, "GetLayout", idString(id), func(ctx context.Context, db bun.IDB) (results.OperationResult[*coursedb.CourseLayout, error], error) {
		layout, err := s.repo.GetLayoutByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, coursedb.ErrLayoutNotFound) {
				return results.FailureResult[*coursedb.CourseLayout, error](err), nil
			}
			return results.OperationResult[*coursedb.CourseLayout, error]{}, err
		}
		return results.SuccessResult[*coursedb.CourseLayout, error](layout), nil
	})
}

// CreateLayout adds a layout to an existing course.
func (s *CourseService) CreateLayout(ctx context.Context, in LayoutInput) (*coursedb.CourseLayout, error) {
	return operation.Do(s.runner, ctx, "CreateLayout", in.Name, func(ctx context.Context, db bun.IDB) (results.OperationResult[*coursedb.CourseLayout, error], error) {
		if err := validateLayout(in); err != nil {
			return results.FailureResult[*coursedb.CourseLayout, error](err), nil
		}
		if in.CourseID <= 0 {
			return results.FailureResult[*coursedb.CourseLayout, error](fmt.Errorf("%w: course_id is required", ErrValidation)), nil
		}

		layout := layoutFromInput(in)
		layout.CourseID = in.CourseID
		if err := s.repo.CreateLayout(ctx, db, layout); err != nil {
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[*coursedb.CourseLayout, error](fmt.Errorf("%w: %d", ErrUnknownCourse, in.CourseID)), nil
			}
			return results.OperationResult[*coursedb.CourseLayout, error]{}, err
		}
		return results.SuccessResult[*coursedb.CourseLayout, error](layout), nil
	})
}

// DeleteLayout removes a layout and its holes.
func (s *CourseService) DeleteLayout(ctx context.Context, id int64) error {
	_, err := operation.Do(s.runner, ctx, "DeleteLayout", idString(id), func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		return deleted(s.repo.DeleteLayout(ctx, db, id), coursedb.ErrLayoutNotFound)
	})
	return err
}

// SearchLayouts lists the layouts of the named course. An empty name yields
// an empty page rather than every layout.
func (s *CourseService) SearchLayouts(ctx context.Context, courseName string) (*LayoutPage, error) {
	courseName = strings.TrimSpace(courseName)
	return operation.Do(s.runner, ctx, "SearchLayouts", courseName, func(ctx context.Context, db bun.IDB) (results.OperationResult[*LayoutPage, error], error) {
		if courseName == "" {
			return results.SuccessResult[*LayoutPage, error](newLayoutPage(nil, 0)), nil
		}

		course, err := s.repo.GetCourseByName(ctx, db, courseName)
		if err != nil {
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[*LayoutPage, error](err), nil
			}
			return results.OperationResult[*LayoutPage, error]{}, err
		}

		layouts, err := s.repo.ListLayoutsByCourse(ctx, db, course.ID)
		if err != nil {
			return results.OperationResult[*LayoutPage, error]{}, err
		}
		return results.SuccessResult[*LayoutPage, error](newLayoutPage(layouts, len(layouts))), nil
	})
}

func lookup(course *coursedb.Course, err error) (courseResult, error) {
	if err != nil {
		if errors.Is(err, coursedb.ErrNotFound) {
			return results.FailureResult[*coursedb.Course, error](err), nil
		}
		return courseResult{}, err
	}
	return results.SuccessResult[*coursedb.Course, error](course), nil
}

func deleted(err error, notFound error) (results.OperationResult[bool, error], error) {
	if err != nil {
		if errors.Is(err, notFound) {
			return results.FailureResult[bool, error](err), nil
		}
		return results.OperationResult[bool, error]{}, err
	}
	return results.SuccessResult[bool, error](true), nil
}

func newLayoutPage(layouts []*coursedb.CourseLayout, count int) *LayoutPage {
	if layouts == nil {
		layouts = []*coursedb.CourseLayout{}
	}
	return &LayoutPage{CourseLayouts: layouts, Count: count}
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
