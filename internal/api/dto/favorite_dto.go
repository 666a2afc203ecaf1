package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/moviehub/catalog-service/internal/domain"
)

const maxFavoriteFieldLength = 255

// AddFavoriteRequest payload for POST /favorites.
type AddFavoriteRequest struct {
	MovieID    int64  `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterURL  string `json:"posterUrl"`
}

// Validate checks field rules.
func (r AddFavoriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID, validation.Required, validation.Min(1)),
		validation.Field(&r.MovieTitle, validation.Required, validation.Length(1, maxFavoriteFieldLength)),
		validation.Field(&r.PosterURL, validation.Length(0, maxFavoriteFieldLength)),
	)
}

// FavoriteResponse is the public view of a favorite.
type FavoriteResponse struct {
	ID         int64  `json:"id"`
	MovieID    int64  `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterURL  string `json:"posterUrl"`
}

// NewFavoriteResponse maps a domain favorite.
func NewFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:         f.ID,
		MovieID:    f.MovieID,
		MovieTitle: f.MovieTitle,
		PosterURL:  f.PosterURL,
	}
}

// NewFavoriteResponses maps a list of favorites.
func NewFavoriteResponses(favorites []domain.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, NewFavoriteResponse(&favorites[i]))
	}
	return out
}
