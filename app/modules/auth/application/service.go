package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/frolf-stats/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAccessTTL = 8 * 24 * time.Hour
	DefaultResetTTL  = 48 * time.Hour

	MinPasswordLength = 8
	// bcrypt ignores bytes past 72.
	MaxPasswordLength = 72
)

// Config holds the configuration for the auth service.
type Config struct {
	AccessTTL time.Duration
	ResetTTL  time.Duration
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

// AuthService implements the Service interface.
type AuthService struct {
	repo        authdb.Repository
	jwtProvider authjwt.Provider
	config      Config
	runner      *operation.Runner
}

// NewAuthService creates a new auth service.
func NewAuthService(
	repo authdb.Repository,
	jwtProvider authjwt.Provider,
	config Config,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AuthService {
	if config.AccessTTL <= 0 {
		config.AccessTTL = DefaultAccessTTL
	}
	if config.ResetTTL <= 0 {
		config.ResetTTL = DefaultResetTTL
	}
	if config.HashCost == 0 {
		config.HashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:        repo,
		jwtProvider: jwtProvider,
		config:      config,
		runner:      operation.NewRunner("AuthService", logger, m, tracer, db),
	}
}

type userResult = results.OperationResult[*authdb.User, error]

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Token, error) {
	return operation.Do(s.runner, ctx, "Login", email, func(ctx context.Context, db bun.IDB) (results.OperationResult[*Token, error], error) {
		user, err := s.repo.GetByEmail(ctx, db, email)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return results.FailureResult[*Token, error](ErrInvalidCredentials), nil
			}
			return results.OperationResult[*Token, error]{}, err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
			return results.FailureResult[*Token, error](ErrInvalidCredentials), nil
		}
		if !user.IsActive {
			return results.FailureResult[*Token, error](ErrInactiveUser), nil
		}

		signed, err := s.jwtProvider.GenerateToken(authdomain.AccessClaims(user.ID), s.config.AccessTTL)
		if err != nil {
			return results.OperationResult[*Token, error]{}, err
		}
		return results.SuccessResult[*Token, error](&Token{AccessToken: signed, TokenType: "bearer"}), nil
	})
}

// Authenticate resolves an access token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*authdb.User, error) {
	return operation.Do(s.runner, ctx, "Authenticate", "", func(ctx context.Context, db bun.IDB) (userResult, error) {
		claims, err := s.jwtProvider.ValidateToken(token)
		if err != nil {
			return results.FailureResult[*authdb.User, error](fmt.Errorf("%w: %w", ErrInvalidToken, err)), nil
		}
		id, err := claims.UserID()
		if err != nil {
			return results.FailureResult[*authdb.User, error](fmt.Errorf("%w: %w", ErrInvalidToken, err)), nil
		}

		user, err := s.repo.GetByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return results.FailureResult[*authdb.User, error](fmt.Errorf("%w: %w", ErrInvalidToken, err)), nil
			}
			return userResult{}, err
		}
		if !user.IsActive {
			return results.FailureResult[*authdb.User, error](ErrInactiveUser), nil
		}
		return results.SuccessResult[*authdb.User, error](user), nil
	})
}

// ResetPassword sets a new password for the email in a reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := operation.Do(s.runner, ctx, "ResetPassword", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		fail := func(err error) (results.OperationResult[struct{}, error], error) {
			return results.FailureResult[struct{}, error](err), nil
		}

		claims, err := s.jwtProvider.ValidateToken(token)
		if err != nil {
			return fail(fmt.Errorf("%w: %w", ErrInvalidToken, err))
		}
		if claims.Type != authdomain.TokenReset {
			return fail(fmt.Errorf("%w: not a reset token", ErrInvalidToken))
		}
		if err := validatePassword(newPassword); err != nil {
			return fail(err)
		}

		user, err := s.repo.GetByEmail(ctx, db, claims.Subject)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return fail(err)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if !user.IsActive {
			return fail(ErrInactiveUser)
		}

		hash, err := s.hash(newPassword)
		if err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.UpdatePassword(ctx, db, user.ID, hash); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	})
	return err
}

// RecoverPassword issues a password-reset token for a registered email.
func (s *AuthService) RecoverPassword(ctx context.Context, email string) (string, error) {
	return operation.Do(s.runner, ctx, "RecoverPassword", email, func(ctx context.Context, db bun.IDB) (results.OperationResult[string, error], error) {
		user, err := s.repo.GetByEmail(ctx, db, email)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return results.FailureResult[string, error](err), nil
			}
			return results.OperationResult[string, error]{}, err
		}
		signed, err := s.jwtProvider.GenerateToken(authdomain.ResetClaims(user.Email), s.config.ResetTTL)
		if err != nil {
			return results.OperationResult[string, error]{}, err
		}
		return results.SuccessResult[string, error](signed), nil
	})
}

// CreateUser validates and stores a new account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, in UserInput) (*authdb.User, error) {
	return operation.Do(s.runner, ctx, "CreateUser", in.Email, func(ctx context.Context, db bun.IDB) (userResult, error) {
		return s.createUser(ctx, db, in)
	})
}

func (s *AuthService) createUser(ctx context.Context, db bun.IDB, in UserInput) (userResult, error) {
	email, err := validateUser(in)
	if err != nil {
		return results.FailureResult[*authdb.User, error](err), nil
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return userResult{}, err
	}
	user := &authdb.User{
		Email:          email,
		HashedPassword: hash,
		FullName:       in.FullName,
		IsActive:       in.IsActive == nil || *in.IsActive,
		IsSuperuser:    in.IsSuperuser,
	}
	if err := s.repo.Create(ctx, db, user); err != nil {
		if errors.Is(err, authdb.ErrDuplicateEmail) {
			return results.FailureResult[*authdb.User, error](err), nil
		}
		return userResult{}, err
	}
	return results.SuccessResult[*authdb.User, error](user), nil
}

// ListUsers returns a page of accounts ordered by id.
func (s *AuthService) ListUsers(ctx context.Context, skip, limit int) (*UserPage, error) {
	return operation.Do(s.runner, ctx, "ListUsers", strconv.Itoa(skip), func(ctx context.Context, db bun.IDB) (results.OperationResult[*UserPage, error], error) {
		users, count, err := s.repo.List(ctx, db, skip, limit)
		if err != nil {
			return results.OperationResult[*UserPage, error]{}, err
		}
		if users == nil {
			users = []*authdb.User{}
		}
		return results.SuccessResult[*UserPage, error](&UserPage{Data: users, Count: count}), nil
	})
}

// EnsureSuperuser returns the existing account for email, or creates it as
// an active superuser.
func (s *AuthService) EnsureSuperuser(ctx context.Context, email, password string) (*authdb.User, error) {
	return operation.Do(s.runner, ctx, "EnsureSuperuser", email, func(ctx context.Context, db bun.IDB) (userResult, error) {
		user, err := s.repo.GetByEmail(ctx, db, email)
		if err == nil {
			return results.SuccessResult[*authdb.User, error](user), nil
		}
		if !errors.Is(err, authdb.ErrNotFound) {
			return userResult{}, err
		}
		return s.createUser(ctx, db, UserInput{Email: email, Password: password, IsSuperuser: true})
	})
}

func (s *AuthService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.config.HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func validateUser(in UserInput) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil || addr.Name != "" {
		return "", fmt.Errorf("%w: invalid email %q", ErrValidation, in.Email)
	}
	if err := validatePassword(in.Password); err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

func validatePassword(p string) error {
	if len(p) < MinPasswordLength || len(p) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d to %d characters", ErrValidation, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}
