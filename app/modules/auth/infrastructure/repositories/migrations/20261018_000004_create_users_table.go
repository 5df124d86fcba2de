package authmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS users (
					id BIGSERIAL PRIMARY KEY,
					email VARCHAR(255) NOT NULL,
					hashed_password TEXT NOT NULL,
					full_name VARCHAR(255),
					is_active BOOLEAN NOT NULL DEFAULT TRUE,
					is_superuser BOOLEAN NOT NULL DEFAULT FALSE
				);
				CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email_lower ON users (lower(email));
			`); err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}

			fmt.Println("Users table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping users table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users;`); err != nil {
				return fmt.Errorf("failed to drop users table: %w", err)
			}
			return nil
		})
	})
}
