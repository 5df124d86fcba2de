package coursedb

import "errors"

var (
	// ErrNotFound is returned when a course, layout or hole does not exist.
	ErrNotFound = errors.New("course not found")

	// ErrLayoutNotFound is returned when a layout does not exist.
	ErrLayoutNotFound = errors.New("course layout not found")

	// ErrDuplicateName is returned when a course name is already taken.
	ErrDuplicateName = errors.New("course with this name already exists")

	// ErrNoRowsAffected is returned when a write matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
