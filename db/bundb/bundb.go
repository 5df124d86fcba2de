// Package bundb opens the PostgreSQL connection and runs the per-module
// migrations.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Options tunes how long Open waits for the database to come up.
type Options struct {
	Attempts int
	Interval time.Duration
}

// DefaultOptions waits up to a minute, which covers a cold compose start.
var DefaultOptions = Options{Attempts: 30, Interval: 2 * time.Second}

// Open connects to dsn and pings until the server answers or the attempts
// run out.
func Open(ctx context.Context, dsn string, logger *slog.Logger, opts Options) (*bun.DB, error) {
	if opts.Attempts <= 0 {
		opts.Attempts = 1
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	var err error
	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		logger.WarnContext(ctx, "Database not ready",
			attr.Int("attempt", attempt),
			attr.Error(err),
		)
		if attempt == opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		case <-time.After(opts.Interval):
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	RegisterModels(db)
	return db, nil
}

// RegisterModels registers every table model with db.
func RegisterModels(db *bun.DB) {
	db.RegisterModel(
		(*coursedb.Course)(nil),
		(*coursedb.CourseLayout)(nil),
		(*coursedb.Hole)(nil),
		(*eventdb.Event)(nil),
		(*resultdb.EventResult)(nil),
		(*authdb.User)(nil),
	)
}
