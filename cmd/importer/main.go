package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	scoredomain "github.com/Black-And-White-Club/frolf-stats/app/modules/score/domain"
	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
	"github.com/Black-And-White-Club/frolf-stats/internal/importer"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "importer",
		Usage: "load results exports and fixtures into frolf-stats",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8000/api/v1",
				Usage:   "base URL of the API",
				EnvVars: []string{"FROLF_API_URL"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token; overrides --email/--password",
				EnvVars: []string{"FROLF_API_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "email",
				Usage:   "login email",
				EnvVars: []string{"FIRST_SUPERUSER"},
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "login password",
				EnvVars: []string{"FIRST_SUPERUSER_PASSWORD"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every created record",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			resultsCommand(),
			resourceCommand("courses", importer.PathCourses, "load courses with nested layouts and holes"),
			resourceCommand("disc-events", importer.PathDiscEvents, "load disc events"),
			resourceCommand("event-sessions", importer.PathEventSessions, "load event sessions"),
			resourceCommand("league-sessions", importer.PathLeagueSessions, "load league sessions"),
			pointsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newClient builds an API client, logging in when credentials are given.
func newClient(c *cli.Context) (*apiclient.Client, error) {
	client := apiclient.New(c.String("api-url"))
	if tok := c.String("token"); tok != "" {
		client.Token = tok
		return client, nil
	}
	if email := c.String("email"); email != "" {
		if err := client.Login(c.Context, email, c.String("password")); err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
	}
	return client, nil
}

func finish(rep importer.Report) error {
	for _, f := range rep.Failures {
		fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", f.Item, f.Err)
	}
	fmt.Println(rep.Summary())
	if len(rep.Failures) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func optionalInt64(c *cli.Context, name string) *int64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int64(name)
	return &v
}

func resultsCommand() *cli.Command {
	return &cli.Command{
		Name:      "results",
		Usage:     "upload every .csv or .xlsx results export in DIR, or a single FILE",
		ArgsUsage: "DIR|FILE",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "event-session", Usage: "event session id"},
			&cli.Int64Flag{Name: "league-session", Usage: "league session id"},
			&cli.Int64Flag{Name: "layout", Usage: "course layout id"},
			&cli.StringFlag{Name: "date", Usage: "round date; defaults to the date in each file name"},
			&cli.Float64Flag{Name: "max-points", Usage: "points for an untied first place"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("results requires exactly one DIR or FILE argument", 2)
			}
			files, err := importer.ResultFiles(c.Args().First())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return cli.Exit("no .csv or .xlsx files found", 1)
			}

			client, err := newClient(c)
			if err != nil {
				return err
			}

			tmpl := apiclient.Upload{
				Date:            c.String("date"),
				CourseLayoutID:  optionalInt64(c, "layout"),
				EventSessionID:  optionalInt64(c, "event-session"),
				LeagueSessionID: optionalInt64(c, "league-session"),
			}
			if c.IsSet("max-points") {
				v := c.Float64("max-points")
				tmpl.MaxPoints = &v
			}
			return finish(importer.New(client, slog.Default()).UploadResults(c.Context, files, tmpl))
		},
	}
}

func resourceCommand(name, path, usage string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "FILE.json",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(name+" requires exactly one FILE.json argument", 2)
			}
			f, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := importer.DecodeRecords(f)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Args().First(), err)
			}

			client, err := newClient(c)
			if err != nil {
				return err
			}
			return finish(importer.New(client, slog.Default()).LoadResources(c.Context, path, records))
		},
	}
}

func pointsCommand() *cli.Command {
	return &cli.Command{
		Name:      "points",
		Usage:     "print the points allocation of a results export without calling the API",
		ArgsUsage: "FILE.csv",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "max-points", Value: scoredomain.DefaultMaxPoints, Usage: "points for an untied first place"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("points requires exactly one FILE argument", 2)
			}
			name := c.Args().First()
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			rows, err := importer.LocalPoints(name, data, c.Float64("max-points"))
			if err != nil {
				return err
			}
			return importer.WritePoints(os.Stdout, rows)
		},
	}
}
