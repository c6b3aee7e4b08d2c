package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/internal/users"
	"github.com/junavolabs/junavo-backend/pkg/auth"
	"github.com/junavolabs/junavo-backend/pkg/auth/session"
	"github.com/junavolabs/junavo-backend/pkg/config"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
	"github.com/junavolabs/junavo-backend/pkg/security"
)

// Login attempts per email are counted in a redis fixed window.
const (
	loginRateLimit  = 10
	loginRateWindow = 15 * time.Minute
	minPasswordLen  = 8
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Credentials is an email/password pair.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	DB       txRunner
	Users    *users.Repository
	Sessions *session.Manager
	Limiter  rateLimiter
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Logger   *logger.Logger
}

// Service implements password registration, login and token rotation.
type Service interface {
	Register(ctx context.Context, creds Credentials) (*models.User, error)
	Login(ctx context.Context, creds Credentials) (*TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

type service struct {
	db       txRunner
	users    *users.Repository
	sessions *session.Manager
	limiter  rateLimiter
	jwt      config.JWTConfig
	password config.PasswordConfig
	logg     *logger.Logger
	validate *validator.Validate
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "database client is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.Limiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		db:       params.DB,
		users:    params.Users,
		sessions: params.Sessions,
		limiter:  params.Limiter,
		jwt:      params.JWT,
		password: params.Password,
		logg:     params.Logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Register creates an account with the base user role.
func (s *service) Register(ctx context.Context, creds Credentials) (*models.User, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := s.validate.Struct(creds); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email and password are required")
	}
	if len(creds.Password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	if _, err := s.users.FindByEmail(ctx, creds.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}

	hash, err := security.HashPassword(creds.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{Email: creds.Email, PasswordHash: hash}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.users.CreateTx(tx, user); err != nil {
			return err
		}
		return s.users.GrantRoleTx(tx, user.ID, enums.AppRoleUser)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, nil
}

// Login verifies the password and issues a token pair. Attempts are rate
// limited per email so credential stuffing burns the window, not the table.
func (s *service) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := s.validate.Struct(creds); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email and password are required")
	}

	allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:"+creds.Email, loginRateLimit, loginRateWindow)
	if err != nil {
		// Limiter outage must not lock out every user.
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "login rate limiter unavailable")
	} else if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later")
	}

	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	role, err := s.primaryRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user.ID, role)
}

// Refresh rotates the refresh token and mints a fresh access token. The old
// access token may be expired but must still parse and match the session.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	accessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "session rotation failed")
	}

	signed, err := auth.MintAccessToken(s.jwt, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: claims.UserID,
		Role:   claims.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenPair{AccessToken: signed, RefreshToken: newRefresh}, nil
}

// Logout revokes the redis session behind the access token.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, userID uuid.UUID, role enums.AppRole) (*TokenPair, error) {
	accessID := session.NewAccessID()
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	signed, err := auth.MintAccessToken(s.jwt, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenPair{AccessToken: signed, RefreshToken: refresh}, nil
}

// primaryRole picks the most privileged role for the JWT claim.
func (s *service) primaryRole(ctx context.Context, userID uuid.UUID) (enums.AppRole, error) {
	roles, err := s.users.ListRoles(ctx, userID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roles")
	}
	ranked := []enums.AppRole{
		enums.AppRoleSuperAdmin,
		enums.AppRoleAdmin,
		enums.AppRoleInventoryManager,
	}
	for _, candidate := range ranked {
		for _, held := range roles {
			if held == candidate {
				return candidate, nil
			}
		}
	}
	return enums.AppRoleUser, nil
}
