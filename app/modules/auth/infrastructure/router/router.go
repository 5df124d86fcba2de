package authrouter

import (
	authhandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the login and user routes on r. Login attempts go through
// limiter when it is non-nil.
func Register(r chi.Router, h authhandlers.Handlers, limiter *authhandlers.IPRateLimiter) {
	r.Route("/login", func(r chi.Router) {
		if limiter != nil {
			r.Use(authhandlers.RateLimitMiddleware(limiter))
		}
		r.Post("/access-token", h.Login)
		r.Post("/reset-password", h.ResetPassword)
		r.With(h.RequireUser).Post("/test-token", h.TestToken)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser, h.RequireSuperuser)
		r.Post("/password-recovery/{email}", h.RecoverPassword)
		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateUser)
	})
}
