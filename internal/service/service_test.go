package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
	"github.com/moviehub/catalog-service/internal/repository/memory"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

const testSecret = "service-test-secret"

var testHasher = auth.NewPasswordHasher(bcrypt.MinCost)

func newAuthService(t *testing.T, store *memory.Store) *AuthService {
	t.Helper()
	return NewAuthService(AuthDependencies{
		UserRepo: store.Users(),
		Hasher:   testHasher,
		Tokens:   auth.NewTokenManager(testSecret, time.Hour),
	})
}

func requireDomainError(t *testing.T, err error, status int, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, status, domainErr.HTTPStatus)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

// failingUsers fails every call with err.
type failingUsers struct {
	repository.UserRepository
	err error
}

func (f failingUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, f.err }
func (f failingUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, f.err
}
func (f failingUsers) GetByID(context.Context, int64) (*domain.User, error) { return nil, f.err }

var errStoreDown = errors.New("connection refused")

