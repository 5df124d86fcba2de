package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/application"
	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LoginFunc           func(ctx context.Context, email, password string) (*authservice.Token, error)
	AuthenticateFunc    func(ctx context.Context, token string) (*authdb.User, error)
	RecoverPasswordFunc func(ctx context.Context, email string) (string, error)
	ResetPasswordFunc   func(ctx context.Context, token, newPassword string) error
	CreateUserFunc      func(ctx context.Context, in authservice.UserInput) (*authdb.User, error)
	ListUsersFunc       func(ctx context.Context, skip, limit int) (*authservice.UserPage, error)
	EnsureSuperuserFunc func(ctx context.Context, email, password string) (*authdb.User, error)
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.Token, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return &authservice.Token{AccessToken: "token", TokenType: "bearer"}, nil
}

func (f *FakeService) Authenticate(ctx context.Context, token string) (*authdb.User, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, token)
	}
	return &authdb.User{ID: 1, Email: "player@example.com", IsActive: true}, nil
}

func (f *FakeService) RecoverPassword(ctx context.Context, email string) (string, error) {
	if f.RecoverPasswordFunc != nil {
		return f.RecoverPasswordFunc(ctx, email)
	}
	return "reset-token", nil
}

func (f *FakeService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if f.ResetPasswordFunc != nil {
		return f.ResetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

func (f *FakeService) CreateUser(ctx context.Context, in authservice.UserInput) (*authdb.User, error) {
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, in)
	}
	return &authdb.User{ID: 2, Email: in.Email, IsActive: true}, nil
}

func (f *FakeService) ListUsers(ctx context.Context, skip, limit int) (*authservice.UserPage, error) {
	if f.ListUsersFunc != nil {
		return f.ListUsersFunc(ctx, skip, limit)
	}
	return &authservice.UserPage{Data: []*authdb.User{}}, nil
}

func (f *FakeService) EnsureSuperuser(ctx context.Context, email, password string) (*authdb.User, error) {
	if f.EnsureSuperuserFunc != nil {
		return f.EnsureSuperuserFunc(ctx, email, password)
	}
	return &authdb.User{ID: 1, Email: email, IsActive: true, IsSuperuser: true}, nil
}

var _ authservice.Service = (*FakeService)(nil)
