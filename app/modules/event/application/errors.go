package eventservice

import "errors"

// ErrValidation wraps every input validation failure.
var ErrValidation = errors.New("invalid event input")
