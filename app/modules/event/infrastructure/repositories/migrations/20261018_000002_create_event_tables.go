package eventmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating disc_events, event_sessions and league_sessions tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS disc_events (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL UNIQUE,
					start_date DATE NOT NULL,
					end_date DATE NOT NULL,
					description TEXT,
					CHECK (end_date >= start_date)
				);
			`); err != nil {
				return fmt.Errorf("failed to create disc_events table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_sessions (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL UNIQUE,
					start_date DATE NOT NULL,
					end_date DATE NOT NULL,
					description TEXT,
					CHECK (end_date >= start_date)
				);
			`); err != nil {
				return fmt.Errorf("failed to create event_sessions table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS league_sessions (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL UNIQUE,
					start_date DATE,
					end_date DATE,
					description TEXT
				);
			`); err != nil {
				return fmt.Errorf("failed to create league_sessions table: %w", err)
			}

			fmt.Println("Event tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping event tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS league_sessions;
				DROP TABLE IF EXISTS event_sessions;
				DROP TABLE IF EXISTS disc_events;
			`); err != nil {
				return fmt.Errorf("failed to drop event tables: %w", err)
			}
			return nil
		})
	})
}
