package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	authservice "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
	authrouter "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/router"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Config is the auth module's slice of the application config.
type Config struct {
	Secret            string
	AccessTTL         time.Duration
	ResetTTL          time.Duration
	SecureCookies     bool
	SuperuserEmail    string
	SuperuserPassword string
}

// Module represents the auth module.
type Module struct {
	AuthService authservice.Service
	Handlers    authhandlers.Handlers
}

// NewAuthModule wires users, login and the auth middleware, and makes sure
// the configured first superuser exists.
func NewAuthModule(
	ctx context.Context,
	obs observability.Observability,
	m metrics.OperationMetrics,
	apiRouter chi.Router,
	db *bun.DB,
	cfg Config,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "auth.NewAuthModule initializing")

	if cfg.Secret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}

	service := authservice.NewAuthService(
		authdb.NewRepository(db),
		authjwt.NewProvider(cfg.Secret),
		authservice.Config{AccessTTL: cfg.AccessTTL, ResetTTL: cfg.ResetTTL},
		logger,
		m,
		obs.Tracer,
		db,
	)

	if cfg.SuperuserEmail != "" {
		user, err := service.EnsureSuperuser(ctx, cfg.SuperuserEmail, cfg.SuperuserPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure first superuser: %w", err)
		}
		logger.InfoContext(ctx, "First superuser ready", attr.Int64("user_id", user.ID))
	}

	maxAge := cfg.AccessTTL
	if maxAge <= 0 {
		maxAge = authservice.DefaultAccessTTL
	}
	handlers := authhandlers.NewAuthHandlers(service, authhandlers.CookieConfig{
		Secure: cfg.SecureCookies,
		MaxAge: maxAge,
	}, logger, obs.Tracer)

	if apiRouter != nil {
		authrouter.Register(apiRouter, handlers, authhandlers.NewIPRateLimiter(5, 10))
	}

	return &Module{
		AuthService: service,
		Handlers:    handlers,
	}, nil
}
