package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/moviehub/catalog-service/internal/domain"
)

const maxCommentLength = 1000

// CreateCommentRequest payload for POST /comments.
type CreateCommentRequest struct {
	MovieID int64  `json:"movieId"`
	Content string `json:"content"`
}

// Validate checks field rules.
func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID, validation.Required, validation.Min(1)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, maxCommentLength)),
	)
}

// CommentAuthor is the public view of a comment's author.
type CommentAuthor struct {
	Name string `json:"name"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	User      CommentAuthor `json:"user"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User:      CommentAuthor{Name: c.UserName},
	}
}

// NewCommentResponses maps a list of comments.
func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
