package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moviehub/catalog-service/internal/api/dto"
	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/service"
)

// CommentsHandler serves public comment reads and authenticated writes.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// ListForMovie GET /comments/:movieId.
func (h *CommentsHandler) ListForMovie(c *fiber.Ctx) error {
	movieID, err := paramID(c, "movieId")
	if err != nil {
		return err
	}
	comments, err := h.comments.ListForMovie(c.UserContext(), movieID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCommentResponses(comments))
}

// Create POST /comments.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.SubjectID(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Post(c.UserContext(), userID, req.MovieID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"comment": dto.NewCommentResponse(comment),
	})
}
