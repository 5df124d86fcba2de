package authdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence.
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, id int64) (*User, error)
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)
	Create(ctx context.Context, db bun.IDB, user *User) error
	List(ctx context.Context, db bun.IDB, skip, limit int) ([]*User, int, error)
	UpdatePassword(ctx context.Context, db bun.IDB, id int64, hashedPassword string) error
}
