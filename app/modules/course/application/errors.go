package courseservice

import "errors"

var (
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("invalid course input")

	// ErrUnknownCourse is returned when a layout references a missing course.
	ErrUnknownCourse = errors.New("referenced course does not exist")
)
