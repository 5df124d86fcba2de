package coursemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating courses, course_layouts and holes tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS courses (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL UNIQUE,
					location TEXT,
					description TEXT,
					city VARCHAR(255),
					state VARCHAR(255),
					country VARCHAR(255),
					holes INTEGER,
					rating DOUBLE PRECISION,
					reviews_count INTEGER,
					link TEXT,
					conditions TEXT,
					conditions_updated TIMESTAMPTZ
				);
			`); err != nil {
				return fmt.Errorf("failed to create courses table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS course_layouts (
					id BIGSERIAL PRIMARY KEY,
					course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
					name VARCHAR(255) NOT NULL,
					par INTEGER,
					length DOUBLE PRECISION,
					difficulty VARCHAR(64)
				);
				CREATE INDEX IF NOT EXISTS idx_course_layouts_course_id ON course_layouts(course_id);
			`); err != nil {
				return fmt.Errorf("failed to create course_layouts table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS holes (
					id BIGSERIAL PRIMARY KEY,
					layout_id BIGINT NOT NULL REFERENCES course_layouts(id) ON DELETE CASCADE,
					hole_number INTEGER NOT NULL,
					par INTEGER,
					distance DOUBLE PRECISION
				);
				CREATE INDEX IF NOT EXISTS idx_holes_layout_id ON holes(layout_id);
			`); err != nil {
				return fmt.Errorf("failed to create holes table: %w", err)
			}

			fmt.Println("Course tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping holes, course_layouts and courses tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS holes;
				DROP TABLE IF EXISTS course_layouts;
				DROP TABLE IF EXISTS courses;
			`); err != nil {
				return fmt.Errorf("failed to drop course tables: %w", err)
			}
			return nil
		})
	})
}
