package app

import (
	"net/http"

	authhandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/httputil"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-stats/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// newRouter builds the root router with the cross-cutting middleware and
// returns it together with the sub-router mounted at the API prefix.
func newRouter(cfg *config.Config, obs observability.Observability) (chi.Router, chi.Router) {
	root := chi.NewRouter()

	origins := append([]string(nil), cfg.HTTP.AllowedOrigins...)
	if cfg.HTTP.FrontendHost != "" {
		origins = append(origins, cfg.HTTP.FrontendHost)
	}

	root.Use(
		httputil.RequestID,
		httputil.RequestLogger(obs.Logger),
		httputil.Recoverer(obs.Logger),
		authhandlers.CORSMiddleware(origins),
		metrics.NewHTTPMetrics(obs.Registry).Middleware,
	)

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, "not found")
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	api := chi.NewRouter()
	api.Use(authhandlers.RateLimitMiddleware(
		authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
	))
	api.Get("/healthcheck/", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.Mount(cfg.HTTP.APIPrefix, api)

	return root, api
}
