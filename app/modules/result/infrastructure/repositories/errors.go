package resultdb

import "errors"

var (
	// ErrNotFound is returned when an event result does not exist.
	ErrNotFound = errors.New("event result not found")

	// ErrDuplicate is returned when (date, username) already exists.
	ErrDuplicate = errors.New("event result for this date and username already exists")

	// ErrUnknownReference is returned when a layout or session id does not exist.
	ErrUnknownReference = errors.New("referenced course layout or session does not exist")
)
