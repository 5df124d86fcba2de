package coursedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for course, layout and hole persistence.
// Every method accepts an optional db handle so callers can run it inside a
// transaction; nil uses the repository's default connection.
type Repository interface {
	ListCourses(ctx context.Context, db bun.IDB, skip, limit int) ([]*Course, error)
	GetCourseByID(ctx context.Context, db bun.IDB, id int64) (*Course, error)
	GetCourseByName(ctx context.Context, db bun.IDB, name string) (*Course, error)
	// CreateCourse inserts the course with its nested layouts and holes.
	CreateCourse(ctx context.Context, db bun.IDB, course *Course) error
	UpdateCourse(ctx context.Context, db bun.IDB, course *Course) error
	DeleteCourse(ctx context.Context, db bun.IDB, id int64) error

	ListLayouts(ctx context.Context, db bun.IDB, skip, limit int) ([]*CourseLayout, int, error)
	ListLayoutsByCourse(ctx context.Context, db bun.IDB, courseID int64) ([]*CourseLayout, error)
	GetLayoutByID(ctx context.Context, db bun.IDB, id int64) (*CourseLayout, error)
	CreateLayout(ctx context.Context, db bun.IDB, layout *CourseLayout) error
	DeleteLayout(ctx context.Context, db bun.IDB, id int64) error
}
