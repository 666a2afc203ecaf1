package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/api/dto"
	"github.com/moviehub/catalog-service/internal/observability"
	"github.com/moviehub/catalog-service/internal/service"
)

// AdminHandler exposes account, comment and favorite administration.
type AdminHandler struct {
	users     *service.UserService
	comments  *service.CommentService
	favorites *service.FavoriteService
	metrics   *observability.Metrics
}

// AdminDependencies bundles services for the admin handler.
type AdminDependencies struct {
	Users     *service.UserService
	Comments  *service.CommentService
	Favorites *service.FavoriteService
	Metrics   *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		users:     deps.Users,
		comments:  deps.Comments,
		favorites: deps.Favorites,
		metrics:   deps.Metrics,
	}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// GetUser GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// CreateUser POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// UpdateUser PUT /admin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AdminUpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), id, service.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListComments GET /admin/comments.
func (h *AdminHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.comments.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AdminCommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewAdminCommentResponse(&comments[i]))
	}
	return c.JSON(items)
}

// GetComment GET /admin/comments/:id.
func (h *AdminHandler) GetComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.comments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminCommentResponse(comment))
}

// CreateComment POST /admin/comments.
func (h *AdminHandler) CreateComment(c *fiber.Ctx) error {
	var req dto.AdminCommentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Create(c.UserContext(), service.CommentInput{
		MovieID: req.MovieID,
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAdminCommentResponse(comment))
}

// UpdateComment PUT /admin/comments/:id.
func (h *AdminHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AdminUpdateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Update(c.UserContext(), id, service.CommentPatch{
		MovieID: req.MovieID,
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminCommentResponse(comment))
}

// DeleteComment DELETE /admin/comments/:id.
func (h *AdminHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFavorites GET /admin/favorites.
func (h *AdminHandler) ListFavorites(c *fiber.Ctx) error {
	favorites, err := h.favorites.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AdminFavoriteResponse, 0, len(favorites))
	for i := range favorites {
		items = append(items, dto.NewAdminFavoriteResponse(&favorites[i]))
	}
	return c.JSON(items)
}

// GetFavorite GET /admin/favorites/:id.
func (h *AdminHandler) GetFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	favorite, err := h.favorites.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminFavoriteResponse(favorite))
}

// CreateFavorite POST /admin/favorites.
func (h *AdminHandler) CreateFavorite(c *fiber.Ctx) error {
	var req dto.AdminFavoriteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	favorite, err := h.favorites.Create(c.UserContext(), favoriteInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAdminFavoriteResponse(favorite))
}

// UpdateFavorite PUT /admin/favorites/:id.
func (h *AdminHandler) UpdateFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AdminFavoriteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	favorite, err := h.favorites.Update(c.UserContext(), id, favoriteInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminFavoriteResponse(favorite))
}

// DeleteFavorite DELETE /admin/favorites/:id.
func (h *AdminHandler) DeleteFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.favorites.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Metrics GET /admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}

func favoriteInput(req dto.AdminFavoriteRequest) service.FavoriteInput {
	return service.FavoriteInput{
		UserID:     req.UserID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		PosterURL:  req.PosterURL,
	}
}
