package authservice

import (
	"context"

	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
)

// Service defines the authentication service interface.
type Service interface {
	// Login checks credentials and issues an access token.
	Login(ctx context.Context, email, password string) (*Token, error)

	// Authenticate resolves an access token to its active user.
	Authenticate(ctx context.Context, token string) (*authdb.User, error)

	// RecoverPassword issues a password-reset token for a registered email.
	RecoverPassword(ctx context.Context, email string) (string, error)

	// ResetPassword sets a new password for the holder of a reset token.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// CreateUser registers a new account.
	CreateUser(ctx context.Context, in UserInput) (*authdb.User, error)

	// ListUsers returns a page of accounts.
	ListUsers(ctx context.Context, skip, limit int) (*UserPage, error)

	// EnsureSuperuser creates the bootstrap superuser when it is missing.
	EnsureSuperuser(ctx context.Context, email, password string) (*authdb.User, error)
}

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserInput is the body of a user creation request.
type UserInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    *string `json:"full_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser bool    `json:"is_superuser"`
}

// UserPage is a page of users with the total count.
type UserPage struct {
	Data  []*authdb.User `json:"data"`
	Count int            `json:"count"`
}
