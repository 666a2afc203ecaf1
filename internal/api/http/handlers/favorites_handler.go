package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/api/dto"
	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/service"
)

// FavoritesHandler manages the caller's saved movies.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// Add POST /favorites.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	userID, err := auth.SubjectID(c)
	if err != nil {
		return err
	}
	var req dto.AddFavoriteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	favorite, created, err := h.favorites.Add(c.UserContext(), userID, req.MovieID, req.MovieTitle, req.PosterURL)
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(fiber.Map{"success": true, "message": "Favorite already exists"})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"favorite": dto.NewFavoriteResponse(favorite),
	})
}

// Remove DELETE /favorites/:movieId.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	userID, err := auth.SubjectID(c)
	if err != nil {
		return err
	}
	movieID, err := paramID(c, "movieId")
	if err != nil {
		return err
	}
	if err := h.favorites.Remove(c.UserContext(), userID, movieID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "movieId": movieID})
}

// List GET /favorites.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	userID, err := auth.SubjectID(c)
	if err != nil {
		return err
	}
	favorites, err := h.favorites.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFavoriteResponses(favorites))
}
