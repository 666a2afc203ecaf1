package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/domain"
)

const minAdminPasswordLength = 6

// AdminCreateUserRequest payload for POST /admin/users.
type AdminCreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Validate checks field rules for a new account.
func (r AdminCreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minAdminPasswordLength, auth.MaxPasswordBytes), passwordFitsHash),
	)
}

// AdminUpdateUserRequest payload for PUT /admin/users/:id. Absent fields are
// left unchanged.
type AdminUpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// Validate checks only the fields that are present.
func (r AdminUpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(minAdminPasswordLength, auth.MaxPasswordBytes), passwordFitsHash),
	)
}

// AdminCommentRequest payload for POST /admin/comments.
type AdminCommentRequest struct {
	MovieID int64  `json:"movieId"`
	UserID  int64  `json:"userId"`
	Content string `json:"content"`
}

// Validate checks field rules.
func (r AdminCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID, validation.Required, validation.Min(1)),
		validation.Field(&r.UserID, validation.Required, validation.Min(1)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, maxCommentLength)),
	)
}

// AdminUpdateCommentRequest payload for PUT /admin/comments/:id.
type AdminUpdateCommentRequest struct {
	MovieID *int64  `json:"movieId"`
	UserID  *int64  `json:"userId"`
	Content *string `json:"content"`
}

// Validate checks only the fields that are present.
func (r AdminUpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.UserID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.Length(1, maxCommentLength)),
	)
}

// AdminFavoriteRequest payload for POST and PUT /admin/favorites.
type AdminFavoriteRequest struct {
	UserID     int64  `json:"userId"`
	MovieID    int64  `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterURL  string `json:"posterUrl"`
}

// Validate checks field rules. The poster URL may be empty.
func (r AdminFavoriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, validation.Min(1)),
		validation.Field(&r.MovieID, validation.Required, validation.Min(1)),
		validation.Field(&r.MovieTitle, validation.Required, validation.Length(1, maxFavoriteFieldLength)),
		validation.Field(&r.PosterURL, validation.Length(0, maxFavoriteFieldLength)),
	)
}

// AdminCommentResponse is the admin view of a comment.
type AdminCommentResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAdminCommentResponse maps a domain comment.
func NewAdminCommentResponse(c *domain.Comment) AdminCommentResponse {
	return AdminCommentResponse{
		ID:        c.ID,
		MovieID:   c.MovieID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// AdminFavoriteResponse is the admin view of a favorite.
type AdminFavoriteResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	UserEmail  string `json:"userEmail"`
	MovieID    int64  `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterURL  string `json:"posterUrl"`
}

// NewAdminFavoriteResponse maps a domain favorite.
func NewAdminFavoriteResponse(f *domain.Favorite) AdminFavoriteResponse {
	return AdminFavoriteResponse{
		ID:         f.ID,
		UserID:     f.UserID,
		UserEmail:  f.UserEmail,
		MovieID:    f.MovieID,
		MovieTitle: f.MovieTitle,
		PosterURL:  f.PosterURL,
	}
}
