// Package testutils starts the containers and the API process shared by the
// integration tests.
package testutils

import (
	"context"
	"fmt"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Black-And-White-Club/frolf-stats/app"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-stats/config"
	"github.com/Black-And-White-Club/frolf-stats/integration_tests/containers"
	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
)

const (
	SuperuserEmail    = "admin@example.com"
	SuperuserPassword = "integration-secret"
	APIPrefix         = "/api/v1"
)

// TestEnvironment holds the containers and a running API for integration tests.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *tcnats.NATSContainer
	Config        *config.Config
	App           *app.App
	Server        *httptest.Server
	// Client is logged in as the superuser.
	Client *apiclient.Client
}

// NewTestEnvironment starts Postgres and NATS, migrates, and serves the API
// router on an httptest server.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	env.PgContainer = pg

	nc, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	env.NatsContainer = nc

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: dsn},
		NATS:     config.NATSConfig{URL: natsURL},
		HTTP: config.HTTPConfig{
			APIPrefix: APIPrefix,
			RateLimit: 1000,
			RateBurst: 1000,
		},
		JWT: config.JWTConfig{
			Secret:    "integration-test-secret",
			AccessTTL: time.Hour,
			ResetTTL:  time.Hour,
		},
		Superuser: config.SuperuserConfig{
			Email:    SuperuserEmail,
			Password: SuperuserPassword,
		},
		Scoring:       config.ScoringConfig{MaxPoints: 30},
		Observability: config.ObservabilityConfig{Environment: "test"},
	}

	application, err := app.NewApp(ctx, env.Config, observability.NewNoop(), app.Options{Migrate: true})
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to build app: %w", err)
	}
	env.App = application

	go func() {
		if err := application.EventBus.Run(ctx); err != nil {
			log.Printf("event bus stopped: %v", err)
		}
	}()

	env.Server = httptest.NewServer(application.Router)
	env.Client = apiclient.New(env.Server.URL + APIPrefix)
	if err := env.Client.Login(ctx, SuperuserEmail, SuperuserPassword); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to log in as superuser: %w", err)
	}
	return env, nil
}

// Reset empties every table except the superuser row.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	_, err := env.App.DB.ExecContext(env.Ctx, `
		TRUNCATE event_results, holes, course_layouts, courses,
			disc_events, event_sessions, league_sessions
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	if _, err := env.App.DB.ExecContext(env.Ctx, `DELETE FROM users WHERE lower(email) <> lower(?)`, SuperuserEmail); err != nil {
		t.Fatalf("failed to delete users: %v", err)
	}
}

// Anonymous returns a client without credentials.
func (env *TestEnvironment) Anonymous() *apiclient.Client {
	return apiclient.New(env.Server.URL + APIPrefix)
}

// Cleanup stops the server, the app and the containers.
func (env *TestEnvironment) Cleanup() {
	if env.Server != nil {
		env.Server.Close()
	}
	env.CancelContext()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.App != nil {
		env.App.Shutdown()
	}
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate Postgres container: %v", err)
		}
	}
}
