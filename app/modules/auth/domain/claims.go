package authdomain

import (
	"fmt"
	"strconv"
	"time"
)

// TokenType distinguishes session tokens from password-reset tokens.
type TokenType string

const (
	TokenAccess TokenType = "access"
	TokenReset  TokenType = "reset"
)

// Claims represents the domain model for authentication claims.
// Access tokens carry the user ID as subject; reset tokens carry the email.
type Claims struct {
	Subject   string
	Type      TokenType
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// AccessClaims builds the claims of a session token for userID.
func AccessClaims(userID int64) *Claims {
	return &Claims{Subject: strconv.FormatInt(userID, 10), Type: TokenAccess}
}

// ResetClaims builds the claims of a password-reset token for email.
func ResetClaims(email string) *Claims {
	return &Claims{Subject: email, Type: TokenReset}
}

// UserID parses the subject of an access token.
func (c *Claims) UserID() (int64, error) {
	if c.Type != TokenAccess {
		return 0, fmt.Errorf("token type %q has no user id", c.Type)
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return id, nil
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
