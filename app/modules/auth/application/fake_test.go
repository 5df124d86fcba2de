package authservice

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return authdomain.AccessClaims(1), nil
}

// ------------------------
// Fake User Repo
// ------------------------

// FakeUserRepo keeps users in memory unless a Func override is set.
type FakeUserRepo struct {
	trace []string
	users map[int64]*authdb.User
	next  int64

	GetByIDFunc        func(ctx context.Context, db bun.IDB, id int64) (*authdb.User, error)
	GetByEmailFunc     func(ctx context.Context, db bun.IDB, email string) (*authdb.User, error)
	CreateFunc         func(ctx context.Context, db bun.IDB, user *authdb.User) error
	ListFunc           func(ctx context.Context, db bun.IDB, skip, limit int) ([]*authdb.User, int, error)
	UpdatePasswordFunc func(ctx context.Context, db bun.IDB, id int64, hashedPassword string) error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{trace: []string{}, users: map[int64]*authdb.User{}}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*authdb.User, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, authdb.ErrNotFound
}

func (f *FakeUserRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*authdb.User, error) {
	f.record("GetByEmail")
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, db, email)
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, authdb.ErrNotFound
}

func (f *FakeUserRepo) Create(ctx context.Context, db bun.IDB, user *authdb.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return authdb.ErrDuplicateEmail
		}
	}
	f.next++
	user.ID = f.next
	f.users[user.ID] = user
	return nil
}

func (f *FakeUserRepo) List(ctx context.Context, db bun.IDB, skip, limit int) ([]*authdb.User, int, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, skip, limit)
	}
	return nil, 0, nil
}

func (f *FakeUserRepo) UpdatePassword(ctx context.Context, db bun.IDB, id int64, hashedPassword string) error {
	f.record("UpdatePassword")
	if f.UpdatePasswordFunc != nil {
		return f.UpdatePasswordFunc(ctx, db, id, hashedPassword)
	}
	u, ok := f.users[id]
	if !ok {
		return authdb.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

var (
	_ authjwt.Provider  = (*FakeJWTProvider)(nil)
	_ authdb.Repository = (*FakeUserRepo)(nil)
)
