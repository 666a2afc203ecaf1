package auth

import (
	"errors"
	"fmt"

	"github.com/moviehub/catalog-service/internal/domain"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

type requirement uint8

const (
	requireNothing requirement = iota
	requireIdentity
	requireRole
)

// Policy is a route's static access requirement, declared at registration.
type Policy struct {
	requirement requirement
	role        domain.Role
}

var (
	// Anonymous admits every caller. A valid token still yields an identity.
	Anonymous = Policy{requirement: requireNothing}
	// Authenticated requires a valid, unexpired token.
	Authenticated = Policy{requirement: requireIdentity}
)

// RequireRole requires an authenticated caller whose role claim equals role.
func RequireRole(role domain.Role) Policy {
	return Policy{requirement: requireRole, role: role}
}

// Evaluate admits or rejects a caller. authErr is the outcome of token
// verification; it only matters when the policy needs an identity.
func (p Policy) Evaluate(identity *domain.Identity, authErr error) error {
	if p.requirement == requireNothing {
		return nil
	}
	if identity == nil {
		if errors.Is(authErr, ErrMissingCredentials) {
			return apperrors.NewUnauthorized("missing authorization header")
		}
		return apperrors.NewUnauthorized("invalid token")
	}
	if p.requirement == requireRole && identity.Role != p.role {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

func (p Policy) String() string {
	switch p.requirement {
	case requireIdentity:
		return "Authenticated"
	case requireRole:
		return fmt.Sprintf("Role(%s)", p.role)
	default:
		return "Anonymous"
	}
}
