package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/domain"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// ErrMissingCredentials is returned when no bearer token was presented.
var ErrMissingCredentials = errors.New("missing authorization header")

// AuthMiddleware resolves bearer tokens into caller identities and enforces
// route policies.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require returns a handler that authenticates the request and evaluates the
// policy once, before the route handler runs. A verified identity is stored in
// the request locals; a failed verification never exposes a partial one.
func (m *AuthMiddleware) Require(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, authErr := m.authenticate(c)
		if errors.Is(authErr, ErrSigningKeyMissing) {
			return apperrors.NewConfigurationError("authentication is not configured", authErr)
		}
		if err := policy.Evaluate(identity, authErr); err != nil {
			return err
		}
		if identity != nil {
			c.Locals(identityKey, identity)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*domain.Identity, error) {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return nil, ErrMissingCredentials
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrInvalidToken
	}
	tokenStr := strings.TrimSpace(parts[1])
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	return m.tokens.Verify(tokenStr)
}

// IdentityFromContext retrieves the verified caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok && identity != nil
}

// SubjectID returns the verified caller's user id. A missing identity is an
// authentication failure.
func SubjectID(c *fiber.Ctx) (int64, error) {
	identity, ok := IdentityFromContext(c)
	if !ok || identity.UserID <= 0 {
		return 0, apperrors.NewUnauthorized("token not valid")
	}
	return identity.UserID, nil
}
