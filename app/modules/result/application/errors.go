package resultservice

import "errors"

var (
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("invalid event result input")

	// ErrUnknownSession is returned when an event or league session id does not exist.
	ErrUnknownSession = errors.New("referenced session does not exist")
)
