package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewConflict("email already registered", nil), CodeConflict, http.StatusConflict},
		{"wrapped domain error", fmt.Errorf("signup: %w", NewUnauthorized("invalid credentials")), CodeUnauthorized, http.StatusUnauthorized},
		{"sql no rows", sql.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"pgx no rows", fmt.Errorf("get user: %w", pgx.ErrNoRows), CodeNotFound, http.StatusNotFound},
		{"fiber forbidden", fiber.NewError(http.StatusForbidden, "nope"), CodeForbidden, http.StatusForbidden},
		{"fiber method not allowed", fiber.ErrMethodNotAllowed, "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed},
		{"unknown error", errors.New("boom"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestInternalErrorHidesCause(t *testing.T) {
	got := ToDomainError(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorContains(t, got.Unwrap(), "password authentication failed")
}

func TestFromValidation(t *testing.T) {
	err := FromValidation(validation.Errors{
		"email":    errors.New("must be a valid email address"),
		"password": errors.New("cannot be blank"),
		"name":     nil,
	})

	got := ToDomainError(err)
	require.NotNil(t, got)
	assert.Equal(t, CodeValidationFailed, got.Code)
	assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
	assert.Equal(t, map[string]any{
		"email":    "must be a valid email address",
		"password": "cannot be blank",
	}, got.Details)
}

func TestFromValidation_PlainError(t *testing.T) {
	assert.NoError(t, FromValidation(nil))

	got := ToDomainError(FromValidation(errors.New("payload required")))
	assert.Equal(t, CodeValidationFailed, got.Code)
	assert.Equal(t, "payload required", got.Message)
}

func TestConfigurationErrorIsServerSide(t *testing.T) {
	cause := errors.New("signing key missing")
	got := ToDomainError(NewConfigurationError("server misconfigured", cause))
	assert.Equal(t, CodeConfigurationError, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
	assert.ErrorIs(t, got, cause)
}
