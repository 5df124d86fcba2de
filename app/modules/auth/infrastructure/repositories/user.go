package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/dberr"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail matches case-insensitively.
func (r *Impl) GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("lower(u.email) = ?", strings.ToLower(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(user).Returning("id").Exec(ctx); err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// List returns a page of users ordered by id, plus the total count.
func (r *Impl) List(ctx context.Context, db bun.IDB, skip, limit int) ([]*User, int, error) {
	db = r.resolveDB(db)
	var users []*User
	count, err := db.NewSelect().
		Model(&users).
		Order("u.id ASC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, count, nil
}

func (r *Impl) UpdatePassword(ctx context.Context, db bun.IDB, id int64, hashedPassword string) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("hashed_password = ?", hashedPassword).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
