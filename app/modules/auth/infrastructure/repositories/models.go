package authdb

import "github.com/uptrace/bun"

// User is an API account. Players in results are referenced by username and
// never need one.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             int64   `bun:"id,pk,autoincrement" json:"id"`
	Email          string  `bun:"email,notnull,unique" json:"email"`
	HashedPassword string  `bun:"hashed_password,notnull" json:"-"`
	FullName       *string `bun:"full_name" json:"full_name"`
	IsActive       bool    `bun:"is_active,notnull,default:true" json:"is_active"`
	IsSuperuser    bool    `bun:"is_superuser,notnull,default:false" json:"is_superuser"`
}
