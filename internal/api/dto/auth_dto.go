package dto

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/domain"
)

// passwordFitsHash rejects passwords bcrypt cannot hash. Length rules count
// runes while bcrypt counts bytes.
var passwordFitsHash = validation.By(func(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if s, ok := value.(string); ok && len(s) > auth.MaxPasswordBytes {
		return fmt.Errorf("must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return nil
})

// SignUpRequest payload for POST /auth/signup.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks field rules before any credential work happens.
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, auth.MaxPasswordBytes), passwordFitsHash),
	)
}

// SignInRequest payload for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks field rules.
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is returned by sign-in.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of an account. The password hash is never
// part of it.
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role().String(),
		IsAdmin: u.IsAdmin,
	}
}
