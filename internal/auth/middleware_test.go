package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/catalog-service/internal/domain"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

func newPolicyApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := NewAuthMiddleware(tm)

	whoami := func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(strconv.FormatInt(identity.UserID, 10) + ":" + identity.Role.String())
	}

	app.Get("/public", mw.Require(Anonymous), whoami)
	app.Get("/private", mw.Require(Authenticated), whoami)
	app.Get("/admin", mw.Require(RequireRole(domain.RoleAdmin)), whoami)
	app.Get("/subject", mw.Require(Authenticated), func(c *fiber.Ctx) error {
		id, err := SubjectID(c)
		if err != nil {
			return err
		}
		return c.SendString(strconv.FormatInt(id, 10))
	})
	return app
}

type policyResult struct {
	status int
	body   string
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) policyResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return policyResult{status: resp.StatusCode, body: string(body)}
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var payload struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload.Code
}

func TestRequire_Policies(t *testing.T) {
	tm := newTestManager("super-secret")
	app := newPolicyApp(t, tm)

	userToken, _, err := tm.Issue(10, "user@x.com", domain.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tm.Issue(1, "admin@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	forged, _, err := newTestManager("other-secret").Issue(1, "admin@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		auth     string
		status   int
		body     string
		wantCode string
	}{
		{name: "anonymous route without token", path: "/public", status: 200, body: "anonymous"},
		{name: "anonymous route with garbage token", path: "/public", auth: "Bearer garbage", status: 200, body: "anonymous"},
		{name: "anonymous route with forged token", path: "/public", auth: "Bearer " + forged, status: 200, body: "anonymous"},
		{name: "anonymous route still sees valid identity", path: "/public", auth: "Bearer " + userToken, status: 200, body: "10:User"},
		{name: "private without header", path: "/private", status: 401, wantCode: apperrors.CodeUnauthorized},
		{name: "private with wrong scheme", path: "/private", auth: "Basic " + userToken, status: 401, wantCode: apperrors.CodeUnauthorized},
		{name: "private with empty bearer", path: "/private", auth: "Bearer ", status: 401, wantCode: apperrors.CodeUnauthorized},
		{name: "private with forged token", path: "/private", auth: "Bearer " + forged, status: 401, wantCode: apperrors.CodeUnauthorized},
		{name: "private with valid token", path: "/private", auth: "Bearer " + userToken, status: 200, body: "10:User"},
		{name: "private with lowercase scheme", path: "/private", auth: "bearer " + userToken, status: 200, body: "10:User"},
		{name: "admin without token is authentication failure", path: "/admin", status: 401, wantCode: apperrors.CodeUnauthorized},
		{name: "admin with user role is authorization failure", path: "/admin", auth: "Bearer " + userToken, status: 403, wantCode: apperrors.CodeForbidden},
		{name: "admin with admin role", path: "/admin", auth: "Bearer " + adminToken, status: 200, body: "1:Admin"},
		{name: "subject id from identity", path: "/subject", auth: "Bearer " + userToken, status: 200, body: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := doRequest(t, app, tt.path, tt.auth)
			assert.Equal(t, tt.status, got.status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, got.body))
				return
			}
			assert.Equal(t, tt.body, got.body)
		})
	}
}

func TestRequire_HandlerNotReachedOnRejection(t *testing.T) {
	tm := newTestManager("super-secret")
	mw := NewAuthMiddleware(tm)
	app := fiber.New()

	reached := false
	app.Get("/me", mw.Require(Authenticated), func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.False(t, reached)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestRequire_MissingSigningKey(t *testing.T) {
	app := newPolicyApp(t, newTestManager(""))

	got := doRequest(t, app, "/private", "Bearer a.b.c")
	assert.Equal(t, http.StatusInternalServerError, got.status)
	assert.Equal(t, apperrors.CodeConfigurationError, errorCode(t, got.body))
}

func TestSubjectID_NoIdentity(t *testing.T) {
	app := fiber.New()
	var subjectErr error
	app.Get("/", func(c *fiber.Ctx) error {
		_, subjectErr = SubjectID(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var de *apperrors.DomainError
	require.True(t, errors.As(subjectErr, &de))
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "Anonymous", Anonymous.String())
	assert.Equal(t, "Authenticated", Authenticated.String())
	assert.Equal(t, "Role(Admin)", RequireRole(domain.RoleAdmin).String())
}
