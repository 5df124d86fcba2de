package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/frolf-stats/config"
	"github.com/Black-And-White-Club/frolf-stats/db/bundb"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "manage frolf-stats database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators opens the database named by the config and hands the module
// migrators to fn.
func withMigrators(c *cli.Context, fn func(migrators []bundb.ModuleMigrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := bundb.Open(c.Context, cfg.Postgres.DSN, slog.Default(), bundb.Options{Attempts: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(bundb.Migrators(db))
}

func forEachModule(c *cli.Context, verb string, fn func(module string, m *migrate.Migrator) error) error {
	return withMigrators(c, func(migrators []bundb.ModuleMigrator) error {
		for _, mm := range migrators {
			fmt.Printf("%s module: %s\n", verb, mm.Module)
			if err := fn(mm.Module, mm.Migrator); err != nil {
				return fmt.Errorf("module %s: %w", mm.Module, err)
			}
		}
		return nil
	})
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return forEachModule(c, "Initializing", func(_ string, m *migrate.Migrator) error {
						return m.Init(c.Context)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return forEachModule(c, "Migrating", func(module string, m *migrate.Migrator) error {
						if err := m.Init(c.Context); err != nil {
							return err
						}
						group, err := m.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", module)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", module, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of one module, or of all modules in reverse order",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []bundb.ModuleMigrator) error {
						if module := c.Args().First(); module != "" {
							m, ok := bundb.Lookup(migrators, module)
							if !ok {
								return fmt.Errorf("invalid module name: %s", module)
							}
							return rollback(c, module, m)
						}
						for i := len(migrators) - 1; i >= 0; i-- {
							if err := rollback(c, migrators[i].Module, migrators[i].Migrator); err != nil {
								return err
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "MODULE NAME...",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []bundb.ModuleMigrator) error {
						module := c.Args().First()
						m, ok := bundb.Lookup(migrators, module)
						if !ok {
							return fmt.Errorf("invalid module name: %s", module)
						}
						name := strings.Join(c.Args().Tail(), "_")
						mf, err := m.CreateGoMigration(c.Context, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", module, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "MODULE NAME...",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []bundb.ModuleMigrator) error {
						module := c.Args().First()
						m, ok := bundb.Lookup(migrators, module)
						if !ok {
							return fmt.Errorf("invalid module name: %s", module)
						}
						name := strings.Join(c.Args().Tail(), "_")
						files, err := m.CreateSQLMigrations(c.Context, name)
						if err != nil {
							return err
						}
						for _, mf := range files {
							fmt.Printf("Created migration for module %s: %s (%s)\n", module, mf.Name, mf.Path)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return forEachModule(c, "Status of", func(_ string, m *migrate.Migrator) error {
						ms, err := m.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						return nil
					})
				},
			},
		},
	}
}

func rollback(c *cli.Context, module string, m *migrate.Migrator) error {
	fmt.Printf("Rolling back migrations for module: %s\n", module)
	group, err := m.Rollback(c.Context)
	if err != nil {
		return err
	}
	if group.IsZero() {
		fmt.Printf("No groups to roll back for module: %s\n", module)
	} else {
		fmt.Printf("Rolled back module: %s to %s\n", module, group)
	}
	return nil
}
