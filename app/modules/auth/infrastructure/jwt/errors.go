package authjwt

import "errors"

// Validation errors. Callers outside this package only distinguish valid
// from invalid; the split is kept for logs and tests.
var (
	// ErrInvalidToken covers malformed tokens, a missing subject and an
	// unknown "typ" claim.
	ErrInvalidToken = errors.New("invalid access or reset token")

	// ErrExpiredToken means exp is in the past. Access tokens live for
	// ACCESS_TOKEN_EXPIRE_MINUTES, reset tokens for EMAIL_RESET_TOKEN_EXPIRE_HOURS.
	ErrExpiredToken = errors.New("access or reset token has expired")

	// ErrInvalidSignature means the token was not signed with SECRET_KEY using HS256.
	ErrInvalidSignature = errors.New("token not signed with the server secret")
)
