package authservice

import "errors"

var (
	// ErrValidation is returned for malformed user or password input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInactiveUser is returned when a disabled account tries to act.
	ErrInactiveUser = errors.New("inactive user")

	// ErrInvalidToken is returned when a token is invalid, expired or of the
	// wrong type.
	ErrInvalidToken = errors.New("invalid authentication token")
)
