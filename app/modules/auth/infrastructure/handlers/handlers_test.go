package authhandlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	authservice "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/handlers"
	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
	authrouter "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/router"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(svc authservice.Service, limiter *authhandlers.IPRateLimiter) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")

	h := authhandlers.NewAuthHandlers(svc, authhandlers.CookieConfig{Secure: true, MaxAge: time.Hour}, logger, tracer)
	r := chi.NewRouter()
	authrouter.Register(r, h, limiter)
	return r
}

func superuserService() *authhandlers.FakeService {
	return &authhandlers.FakeService{
		AuthenticateFunc: func(ctx context.Context, token string) (*authdb.User, error) {
			return &authdb.User{ID: 1, Email: "admin@example.com", IsActive: true, IsSuperuser: true}, nil
		},
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		setup      func(*authhandlers.FakeService)
		wantStatus int
		verify     func(t *testing.T, rr *httptest.ResponseRecorder)
	}{
		{
			name:       "success sets cookie",
			form:       url.Values{"username": {"player@example.com"}, "password": {"correct-horse"}},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				var tok authservice.Token
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tok))
				assert.Equal(t, "token", tok.AccessToken)
				assert.Equal(t, "bearer", tok.TokenType)

				cookies := rr.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, authhandlers.AccessTokenCookie, cookies[0].Name)
				assert.Equal(t, "token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
				assert.True(t, cookies[0].Secure)
				assert.Equal(t, 3600, cookies[0].MaxAge)
			},
		},
		{
			name:       "missing password",
			form:       url.Values{"username": {"player@example.com"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad credentials",
			form: url.Values{"username": {"player@example.com"}, "password": {"nope"}},
			setup: func(s *authhandlers.FakeService) {
				s.LoginFunc = func(ctx context.Context, email, password string) (*authservice.Token, error) {
					return nil, authservice.ErrInvalidCredentials
				}
			},
			wantStatus: http.StatusBadRequest,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Contains(t, rr.Body.String(), "incorrect email or password")
				assert.Empty(t, rr.Result().Cookies())
			},
		},
		{
			name: "inactive user",
			form: url.Values{"username": {"gone@example.com"}, "password": {"correct-horse"}},
			setup: func(s *authhandlers.FakeService) {
				s.LoginFunc = func(ctx context.Context, email, password string) (*authservice.Token, error) {
					return nil, authservice.ErrInactiveUser
				}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "infrastructure failure",
			form: url.Values{"username": {"player@example.com"}, "password": {"correct-horse"}},
			setup: func(s *authhandlers.FakeService) {
				s.LoginFunc = func(ctx context.Context, email, password string) (*authservice.Token, error) {
					return nil, fmt.Errorf("Login: %w", context.DeadlineExceeded)
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &authhandlers.FakeService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			req := httptest.NewRequest(http.MethodPost, "/login/access-token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()
			newTestRouter(svc, nil).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.verify != nil {
				tt.verify(t, rr)
			}
		})
	}
}

func TestTestToken(t *testing.T) {
	var gotToken string
	svc := &authhandlers.FakeService{
		AuthenticateFunc: func(ctx context.Context, token string) (*authdb.User, error) {
			gotToken = token
			if token != "good" {
				return nil, authservice.ErrInvalidToken
			}
			return &authdb.User{ID: 5, Email: "player@example.com", IsActive: true}, nil
		},
	}
	h := newTestRouter(svc, nil)

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
		wantToken  string
	}{
		{
			name:       "bearer header",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") },
			wantStatus: http.StatusOK,
			wantToken:  "good",
		},
		{
			name: "cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: authhandlers.AccessTokenCookie, Value: "good"})
			},
			wantStatus: http.StatusOK,
			wantToken:  "good",
		},
		{
			name:       "invalid token",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") },
			wantStatus: http.StatusUnauthorized,
			wantToken:  "bad",
		},
		{
			name:       "no credentials",
			prepare:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Basic Zm9vOmJhcg==") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotToken = ""
			req := httptest.NewRequest(http.MethodPost, "/login/test-token", nil)
			tt.prepare(req)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantToken, gotToken)
			if tt.wantStatus == http.StatusOK {
				var u authdb.User
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
				assert.Equal(t, int64(5), u.ID)
				assert.NotContains(t, rr.Body.String(), "hashed_password")
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "invalid token", err: authservice.ErrInvalidToken, wantStatus: http.StatusBadRequest},
		{name: "unknown user", err: authdb.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "inactive user", err: authservice.ErrInactiveUser, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &authhandlers.FakeService{
				ResetPasswordFunc: func(ctx context.Context, token, newPassword string) error {
					assert.Equal(t, "tok", token)
					assert.Equal(t, "battery-staple", newPassword)
					return tt.err
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/login/reset-password",
				strings.NewReader(`{"token":"tok","new_password":"battery-staple"}`))
			rr := httptest.NewRecorder()
			newTestRouter(svc, nil).ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUsers_RequireSuperuser(t *testing.T) {
	regular := &authhandlers.FakeService{}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer x")
	newTestRouter(regular, nil).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	newTestRouter(regular, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "duplicate", err: authdb.ErrDuplicateEmail, wantStatus: http.StatusConflict},
		{name: "invalid", err: fmt.Errorf("%w: invalid email", authservice.ErrValidation), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := superuserService()
			svc.CreateUserFunc = func(ctx context.Context, in authservice.UserInput) (*authdb.User, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &authdb.User{ID: 9, Email: in.Email, IsActive: true}, nil
			}
			req := httptest.NewRequest(http.MethodPost, "/users",
				strings.NewReader(`{"email":"new@example.com","password":"correct-horse","is_superuser":false}`))
			req.Header.Set("Authorization", "Bearer admin")
			rr := httptest.NewRecorder()
			newTestRouter(svc, nil).ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestListUsers(t *testing.T) {
	svc := superuserService()
	svc.ListUsersFunc = func(ctx context.Context, skip, limit int) (*authservice.UserPage, error) {
		assert.Equal(t, 5, skip)
		assert.Equal(t, 10, limit)
		return &authservice.UserPage{Data: []*authdb.User{{ID: 1, Email: "admin@example.com"}}, Count: 1}, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/users?skip=5&limit=10", nil)
	req.Header.Set("Authorization", "Bearer admin")
	rr := httptest.NewRecorder()
	newTestRouter(svc, nil).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var page authservice.UserPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Count)
}

func TestRecoverPassword(t *testing.T) {
	svc := superuserService()
	svc.RecoverPasswordFunc = func(ctx context.Context, email string) (string, error) {
		assert.Equal(t, "player@example.com", email)
		return "reset-tok", nil
	}
	req := httptest.NewRequest(http.MethodPost, "/password-recovery/player@example.com", nil)
	req.Header.Set("Authorization", "Bearer admin")
	rr := httptest.NewRecorder()
	newTestRouter(svc, nil).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "reset-tok")
}

func TestLogin_RateLimited(t *testing.T) {
	h := newTestRouter(&authhandlers.FakeService{}, authhandlers.NewIPRateLimiter(0, 1))
	form := url.Values{"username": {"player@example.com"}, "password": {"correct-horse"}}.Encode()

	var codes []int
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/login/access-token", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := authhandlers.CORSMiddleware([]string{"https://stats.example.com"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/courses", nil)
	req.Header.Set("Origin", "https://stats.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://stats.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	req = httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
