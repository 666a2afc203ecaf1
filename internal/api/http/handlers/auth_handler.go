package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/api/dto"
	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/service"
)

// AuthHandler exposes sign-up, sign-in and the current identity.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.auth.SignUp(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, _, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := auth.SubjectID(c)
	if err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
