package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/config"
	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

const msgInvalidCredentials = "invalid credentials"

// AuthService coordinates sign-up, sign-in and identity lookups.
type AuthService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenManager
	logger *zap.Logger

	// dummyHash is compared against when the email is unknown so that both
	// sign-in failure paths cost one bcrypt comparison.
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Hasher   auth.PasswordHasher
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dummy, err := deps.Hasher.Hash("catalog-service-timing-equalizer")
	if err != nil {
		logger.Warn("unable to prepare sign-in timing hash", zap.Error(err))
	}
	return &AuthService{
		users:     deps.UserRepo,
		hasher:    deps.Hasher,
		tokens:    deps.Tokens,
		logger:    logger,
		dummyHash: dummy,
	}
}

// NormalizeEmail strips surrounding whitespace. Case is kept: emails are
// compared exactly as stored.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// SignUp registers a regular user. An email already on record is a conflict
// and no record is written.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, emailConflict(email)
	}

	hash, err := hashPassword(s.hasher, password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, emailConflict(email)
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID))
	return user, nil
}

func hashPassword(hasher auth.PasswordHasher, password string) (string, error) {
	hash, err := hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("validation failed", map[string]any{
			"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
		})
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

// SignIn checks credentials and issues an access token. Unknown emails and
// wrong passwords produce the same authentication failure.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		s.hasher.Verify(password, s.dummyHash)
		return "", time.Time{}, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", time.Time{}, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role())
	if err != nil {
		if errors.Is(err, auth.ErrSigningKeyMissing) {
			return "", time.Time{}, apperrors.NewConfigurationError("token signing is not configured", err)
		}
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// CurrentUser re-reads the caller's record. Name and admin flag reflect the
// store; the role used for authorization is still the one in the token.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SeedDefaultAdmin creates the configured admin account when it does not exist
// yet. It reports whether an account was created.
func (s *AuthService) SeedDefaultAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error) {
	email := NormalizeEmail(cfg.Email)
	if email == "" || cfg.Password == "" {
		s.logger.Info("default admin not configured; skipping seed")
		return false, nil
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(cfg.Password)
	if err != nil {
		return false, err
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Admin"
	}
	admin := &domain.User{Name: name, Email: email, PasswordHash: hash, IsAdmin: true}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("default admin created", zap.Int64("user_id", admin.ID))
	return true, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func emailConflict(email string) error {
	return apperrors.NewConflict("email already registered", map[string]any{"email": email})
}
