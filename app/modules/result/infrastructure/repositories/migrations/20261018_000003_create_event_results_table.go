package resultmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating event_results table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_results (
					id BIGSERIAL PRIMARY KEY,
					date TIMESTAMPTZ NOT NULL,
					division VARCHAR(64) NOT NULL,
					position VARCHAR(16) NOT NULL DEFAULT '',
					position_raw DOUBLE PRECISION,
					name VARCHAR(255) NOT NULL,
					event_relative_score INTEGER,
					event_total_score INTEGER,
					pdga_number BIGINT,
					username VARCHAR(255) NOT NULL,
					round_relative_score INTEGER,
					round_total_score INTEGER,
					round_points DOUBLE PRECISION NOT NULL DEFAULT 0,
					course_layout_id BIGINT NOT NULL REFERENCES course_layouts(id) ON DELETE RESTRICT,
					event_session_id BIGINT REFERENCES event_sessions(id) ON DELETE SET NULL,
					league_session_id BIGINT REFERENCES league_sessions(id) ON DELETE SET NULL,
					CONSTRAINT uq_event_results_date_username UNIQUE (date, username)
				);
				CREATE INDEX IF NOT EXISTS idx_event_results_username ON event_results(username);
				CREATE INDEX IF NOT EXISTS idx_event_results_event_session ON event_results(event_session_id);
				CREATE INDEX IF NOT EXISTS idx_event_results_layout ON event_results(course_layout_id);
			`); err != nil {
				return fmt.Errorf("failed to create event_results table: %w", err)
			}

			fmt.Println("Event results table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping event_results table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS event_results;`); err != nil {
				return fmt.Errorf("failed to drop event_results table: %w", err)
			}
			return nil
		})
	})
}
