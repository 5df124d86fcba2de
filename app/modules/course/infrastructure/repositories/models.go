package coursedb

import (
	"time"

	"github.com/uptrace/bun"
)

// Course is a disc golf course.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID                int64      `bun:"id,pk,autoincrement" json:"id"`
	Name              string     `bun:"name,notnull,unique" json:"name"`
	Location          *string    `bun:"location" json:"location"`
	Description       *string    `bun:"description" json:"description"`
	City              *string    `bun:"city" json:"city"`
	State             *string    `bun:"state" json:"state"`
	Country           *string    `bun:"country" json:"country"`
	Holes             *int       `bun:"holes" json:"holes"`
	Rating            *float64   `bun:"rating" json:"rating"`
	ReviewsCount      *int       `bun:"reviews_count" json:"reviews_count"`
	Link              *string    `bun:"link" json:"link"`
	Conditions        *string    `bun:"conditions" json:"conditions"`
	ConditionsUpdated *time.Time `bun:"conditions_updated" json:"conditions_updated"`

	Layouts []*CourseLayout `bun:"rel:has-many,join:id=course_id" json:"layouts"`
}

// CourseLayout is one tee/basket configuration of a course.
type CourseLayout struct {
	bun.BaseModel `bun:"table:course_layouts,alias:cl"`

	ID         int64    `bun:"id,pk,autoincrement" json:"id"`
	CourseID   int64    `bun:"course_id,notnull" json:"course_id"`
	Name       string   `bun:"name,notnull" json:"name"`
	Par        *int     `bun:"par" json:"par"`
	Length     *float64 `bun:"length" json:"length"`
	Difficulty *string  `bun:"difficulty" json:"difficulty"`

	Holes []*Hole `bun:"rel:has-many,join:id=layout_id" json:"holes"`
}

// Hole belongs to a layout.
type Hole struct {
	bun.BaseModel `bun:"table:holes,alias:h"`

	ID         int64    `bun:"id,pk,autoincrement" json:"id"`
	LayoutID   int64    `bun:"layout_id,notnull" json:"layout_id"`
	HoleNumber int      `bun:"hole_number,notnull" json:"hole_number"`
	Par        *int     `bun:"par" json:"par"`
	Distance   *float64 `bun:"distance" json:"distance"`
}
