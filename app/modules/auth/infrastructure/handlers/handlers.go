package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	authservice "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/application"
	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/httputil"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

// CookieConfig controls the access token cookie set on login.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service authservice.Service
	cookie  CookieConfig
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	cookie CookieConfig,
	logger *slog.Logger,
	tracer trace.Tracer,
) *AuthHandlers {
	return &AuthHandlers{
		service: service,
		cookie:  cookie,
		logger:  logger,
		tracer:  tracer,
	}
}

type message struct {
	Message string `json:"message"`
}

// Login takes an OAuth2 password form where username is the email.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	email, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if email == "" || password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, token)
}

// TestToken echoes the authenticated user.
func (h *AuthHandlers) TestToken(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

type recoveryResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// RecoverPassword hands a reset token to a superuser, who passes it on.
func (h *AuthHandlers) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	token, err := h.service.RecoverPassword(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, recoveryResponse{Email: email, Token: token})
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, message{Message: "Password updated successfully"})
}

func (h *AuthHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	users, err := h.service.ListUsers(r.Context(), page.Skip, page.Limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

func (h *AuthHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in authservice.UserInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.service.CreateUser(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (h *AuthHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authservice.ErrValidation),
		errors.Is(err, authservice.ErrInvalidCredentials),
		errors.Is(err, authservice.ErrInactiveUser),
		errors.Is(err, authservice.ErrInvalidToken):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authdb.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, "the user with this email does not exist in the system")
	case errors.Is(err, authdb.ErrDuplicateEmail):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Auth request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
