package eventdb

import "errors"

var (
	// ErrNotFound is returned when no row matches the id.
	ErrNotFound = errors.New("event not found")

	// ErrDuplicateName is returned when the name is already taken.
	ErrDuplicateName = errors.New("event with this name already exists")

	// ErrUnknownKind is returned for a Kind outside the three tables.
	ErrUnknownKind = errors.New("unknown event kind")
)
