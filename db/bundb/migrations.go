package bundb

import (
	"context"
	"fmt"
	"log/slog"

	authmigrations "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories/migrations"
	coursemigrations "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories/migrations"
	eventmigrations "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories/migrations"
	resultmigrations "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator is the migrator of one module. Each module tracks its
// migrations in its own table.
type ModuleMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators returns the module migrators in dependency order: results
// reference layouts and sessions, so course and event come first.
func Migrators(db *bun.DB) []ModuleMigrator {
	mk := func(module string, ms *migrate.Migrations) ModuleMigrator {
		return ModuleMigrator{
			Module: module,
			Migrator: migrate.NewMigrator(db, ms,
				migrate.WithTableName("bun_migrations_"+module),
				migrate.WithLocksTableName("bun_migration_locks_"+module),
			),
		}
	}
	return []ModuleMigrator{
		mk("course", coursemigrations.Migrations),
		mk("event", eventmigrations.Migrations),
		mk("result", resultmigrations.Migrations),
		mk("auth", authmigrations.Migrations),
	}
}

// Lookup finds the migrator of module.
func Lookup(migrators []ModuleMigrator, module string) (*migrate.Migrator, bool) {
	for _, m := range migrators {
		if m.Module == module {
			return m.Migrator, true
		}
	}
	return nil, false
}

// MigrateUp initializes the tracking tables and applies every pending
// migration, module by module.
func MigrateUp(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", m.Module, err)
		}
		if err := m.Migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to lock %s migrations: %w", m.Module, err)
		}
		group, err := m.Migrator.Migrate(ctx)
		unlockErr := m.Migrator.Unlock(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", m.Module, err)
		}
		if unlockErr != nil {
			return fmt.Errorf("failed to unlock %s migrations: %w", m.Module, unlockErr)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", m.Module))
		} else {
			logger.InfoContext(ctx, "Migrated module", attr.String("module", m.Module), attr.String("group", group.String()))
		}
	}
	return nil
}
