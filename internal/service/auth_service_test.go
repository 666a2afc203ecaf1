package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/config"
	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository/memory"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

func TestSignUp_TwiceIsConflict(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Ann", "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, testHasher.Verify("secret123", user.PasswordHash))

	_, err = svc.SignUp(ctx, "Ann again", " a@x.com ", "other-pass")
	requireDomainError(t, err, http.StatusConflict, apperrors.CodeConflict)

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSignUp_EmailCaseIsSignificant(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)
	ctx := context.Background()

	upper, err := svc.SignUp(ctx, "Ann", "A@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "A@x.com", upper.Email)

	lower, err := svc.SignUp(ctx, "Other Ann", "a@x.com", "secret456")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", lower.Email)
	assert.NotEqual(t, upper.ID, lower.ID)

	_, _, err = svc.SignIn(ctx, "A@x.com", "secret456")
	requireDomainError(t, err, http.StatusUnauthorized, apperrors.CodeUnauthorized)

	token, _, err := svc.SignIn(ctx, "a@x.com", "secret456")
	require.NoError(t, err)
	identity, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, lower.ID, identity.UserID)
}

func TestSignUp_PasswordOverBcryptLimit(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)

	for _, password := range []string{strings.Repeat("a", 80), strings.Repeat("é", 50)} {
		_, err := svc.SignUp(context.Background(), "Ann", "a@x.com", password)
		domainErr := requireDomainError(t, err, http.StatusBadRequest, apperrors.CodeValidationFailed)
		assert.Contains(t, domainErr.Details, "password")
	}

	users, err := store.Users().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSignIn(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Ann", "a@x.com", "secret123")
	require.NoError(t, err)

	token, expiresAt, err := svc.SignIn(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{UserID: user.ID, Email: "a@x.com", Role: domain.RoleUser}, identity)

	_, _, err = svc.SignIn(ctx, "a@x.com", "wrong")
	wrongPassword := requireDomainError(t, err, http.StatusUnauthorized, apperrors.CodeUnauthorized)

	_, _, err = svc.SignIn(ctx, "nobody@x.com", "secret123")
	unknownEmail := requireDomainError(t, err, http.StatusUnauthorized, apperrors.CodeUnauthorized)
	assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
}

func TestSignIn_AdminRoleClaim(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)
	ctx := context.Background()

	created, err := svc.SeedDefaultAdmin(ctx, config.AdminConfig{Name: "Root", Email: "root@x.com", Password: "rootpass"})
	require.NoError(t, err)
	require.True(t, created)

	token, _, err := svc.SignIn(ctx, "root@x.com", "rootpass")
	require.NoError(t, err)
	identity, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestSignIn_MissingSigningKey(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(AuthDependencies{
		UserRepo: store.Users(),
		Hasher:   testHasher,
		Tokens:   auth.NewTokenManager("", time.Hour),
	})
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "Ann", "a@x.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "a@x.com", "secret123")
	requireDomainError(t, err, http.StatusInternalServerError, apperrors.CodeConfigurationError)
}

func TestSignIn_StoreFailurePropagates(t *testing.T) {
	svc := NewAuthService(AuthDependencies{
		UserRepo: failingUsers{err: errStoreDown},
		Hasher:   testHasher,
		Tokens:   auth.NewTokenManager(testSecret, time.Hour),
	})

	_, _, err := svc.SignIn(context.Background(), "a@x.com", "secret123")
	domainErr := requireDomainError(t, err, http.StatusInternalServerError, apperrors.CodeInternalError)
	assert.ErrorIs(t, domainErr, errStoreDown)

	_, err = svc.SignUp(context.Background(), "Ann", "a@x.com", "secret123")
	requireDomainError(t, err, http.StatusInternalServerError, apperrors.CodeInternalError)
}

func TestCurrentUser(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Ann", "a@x.com", "secret123")
	require.NoError(t, err)

	got, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = svc.CurrentUser(ctx, 999)
	requireDomainError(t, err, http.StatusNotFound, apperrors.CodeNotFound)
}

func TestSeedDefaultAdmin(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)
	ctx := context.Background()

	created, err := svc.SeedDefaultAdmin(ctx, config.AdminConfig{})
	require.NoError(t, err)
	assert.False(t, created)

	cfg := config.AdminConfig{Email: "Admin@X.com", Password: "adminpass"}
	created, err = svc.SeedDefaultAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedDefaultAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := store.Users().GetByEmail(ctx, "Admin@X.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "Admin", admin.Name)
}
