package courseservice

import (
	"context"
	"time"

	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
)

// Service defines the course, layout and hole operations.
type Service interface {
	ListCourses(ctx context.Context, skip, limit int) ([]*coursedb.Course, error)
	GetCourse(ctx context.Context, id int64) (*coursedb.Course, error)
	GetCourseByName(ctx context.Context, name string) (*coursedb.Course, error)
	CreateCourse(ctx context.Context, in CourseInput) (*coursedb.Course, error)
	UpdateCourse(ctx context.Context, id int64, in CourseInput) (*coursedb.Course, error)
	DeleteCourse(ctx context.Context, id int64) error

	ListLayouts(ctx context.Context, skip, limit int) (*LayoutPage, error)
	GetLayout(ctx context.Context, id int64) (*coursedb.CourseLayout, error)
	CreateLayout(ctx context.Context, in LayoutInput) (*coursedb.CourseLayout, error)
	DeleteLayout(ctx context.Context, id int64) error
	// SearchLayouts returns the layouts of the course with the given name.
	SearchLayouts(ctx context.Context, courseName string) (*LayoutPage, error)
}

// CourseInput is the writable part of a course. Layouts are only honoured
// on create.
type CourseInput struct {
	Name              string        `json:"name"`
	Location          *string       `json:"location"`
	Description       *string       `json:"description"`
	City              *string       `json:"city"`
	State             *string       `json:"state"`
	Country           *string       `json:"country"`
	Holes             *int          `json:"holes"`
	Rating            *float64      `json:"rating"`
	ReviewsCount      *int          `json:"reviews_count"`
	Link              *string       `json:"link"`
	Conditions        *string       `json:"conditions"`
	ConditionsUpdated *time.Time    `json:"conditions_updated"`
	Layouts           []LayoutInput `json:"layouts"`
}

// LayoutInput creates a layout. CourseID is ignored when nested in a course.
type LayoutInput struct {
	CourseID   int64       `json:"course_id"`
	Name       string      `json:"name"`
	Par        *int        `json:"par"`
	Length     *float64    `json:"length"`
	Difficulty *string     `json:"difficulty"`
	Holes      []HoleInput `json:"holes"`
}

// HoleInput creates a hole.
type HoleInput struct {
	HoleNumber int      `json:"hole_number"`
	Par        *int     `json:"par"`
	Distance   *float64 `json:"distance"`
}

// LayoutPage is a page of layouts with a count.
type LayoutPage struct {
	CourseLayouts []*coursedb.CourseLayout `json:"course_layouts"`
	Count         int                      `json:"count"`
}
