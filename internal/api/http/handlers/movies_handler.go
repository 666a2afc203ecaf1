package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/api/dto"
	"github.com/moviehub/catalog-service/internal/service"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

// MoviesHandler proxies movie metadata.
type MoviesHandler struct {
	movies *service.MovieService
}

// NewMoviesHandler constructs handler.
func NewMoviesHandler(movies *service.MovieService) *MoviesHandler {
	return &MoviesHandler{movies: movies}
}

// Genres GET /movies/genres.
func (h *MoviesHandler) Genres(c *fiber.Ctx) error {
	genres, err := h.movies.Genres(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"genres": genres})
}

// TopRated GET /movies/top-rated.
func (h *MoviesHandler) TopRated(c *fiber.Ctx) error {
	var q dto.MoviePageQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewBadRequest("invalid query")
	}
	page, err := h.movies.TopRated(c.UserContext(), dto.PageOrDefault(q.Page))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Discover GET /movies/discover.
func (h *MoviesHandler) Discover(c *fiber.Ctx) error {
	var q dto.DiscoverQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewBadRequest("invalid query")
	}
	page, err := h.movies.Discover(c.UserContext(), q.Genre, dto.PageOrDefault(q.Page))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Search GET /movies/search.
func (h *MoviesHandler) Search(c *fiber.Ctx) error {
	var q dto.SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewBadRequest("invalid query")
	}
	page, err := h.movies.Search(c.UserContext(), q.Query, dto.PageOrDefault(q.Page))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Movie GET /movies/:id.
func (h *MoviesHandler) Movie(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.movies.Movie(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(movie)
}
