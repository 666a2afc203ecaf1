package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

// FavoriteService manages saved movies.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	users     repository.UserRepository
}

// FavoriteInput describes a favorite written by an admin.
type FavoriteInput struct {
	UserID     int64
	MovieID    int64
	MovieTitle string
	PosterURL  string
}

// NewFavoriteService constructs the service.
func NewFavoriteService(favorites repository.FavoriteRepository, users repository.UserRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, users: users}
}

// Add saves a movie for the caller. When the movie is already saved the
// existing entry is returned with created=false.
func (s *FavoriteService) Add(ctx context.Context, userID, movieID int64, title, posterURL string) (*domain.Favorite, bool, error) {
	existing, err := s.favorites.GetByUserAndMovie(ctx, userID, movieID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.MapError(err)
	}

	favorite := &domain.Favorite{
		UserID:     userID,
		MovieID:    movieID,
		MovieTitle: strings.TrimSpace(title),
		PosterURL:  strings.TrimSpace(posterURL),
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrUserMissing) {
			return nil, false, apperrors.NewUnauthorized("token not valid")
		}
		return nil, false, apperrors.MapError(err)
	}
	return favorite, true, nil
}

// Remove deletes the caller's favorite for movieID.
func (s *FavoriteService) Remove(ctx context.Context, userID, movieID int64) error {
	favorite, err := s.favorites.GetByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("favorite", map[string]any{"movieId": movieID})
		}
		return apperrors.MapError(err)
	}
	if err := s.favorites.Delete(ctx, favorite.ID); err != nil {
		return favoriteLookupErr(favorite.ID, err)
	}
	return nil
}

// ListForUser returns the caller's favorites.
func (s *FavoriteService) ListForUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return favorites, nil
}

// List returns every favorite for administration.
func (s *FavoriteService) List(ctx context.Context) ([]domain.Favorite, error) {
	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return favorites, nil
}

// Get returns one favorite with the owner's email.
func (s *FavoriteService) Get(ctx context.Context, id int64) (*domain.Favorite, error) {
	favorite, err := s.favorites.GetByID(ctx, id)
	if err != nil {
		return nil, favoriteLookupErr(id, err)
	}
	return favorite, nil
}

// Create adds a favorite for any existing user.
func (s *FavoriteService) Create(ctx context.Context, input FavoriteInput) (*domain.Favorite, error) {
	if err := s.ensureUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	favorite := input.toDomain()
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, favoriteWriteErr(err)
	}
	return s.Get(ctx, favorite.ID)
}

// Update replaces a favorite.
func (s *FavoriteService) Update(ctx context.Context, id int64, input FavoriteInput) (*domain.Favorite, error) {
	if _, err := s.favorites.GetByID(ctx, id); err != nil {
		return nil, favoriteLookupErr(id, err)
	}
	if err := s.ensureUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	favorite := input.toDomain()
	favorite.ID = id
	if err := s.favorites.Update(ctx, favorite); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, favoriteLookupErr(id, err)
		}
		return nil, favoriteWriteErr(err)
	}
	return s.Get(ctx, id)
}

// Delete removes a favorite.
func (s *FavoriteService) Delete(ctx context.Context, id int64) error {
	if err := s.favorites.Delete(ctx, id); err != nil {
		return favoriteLookupErr(id, err)
	}
	return nil
}

func (s *FavoriteService) ensureUser(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		return apperrors.NewBadRequest("user not found")
	}
	return nil
}

func (in FavoriteInput) toDomain() *domain.Favorite {
	return &domain.Favorite{
		UserID:     in.UserID,
		MovieID:    in.MovieID,
		MovieTitle: strings.TrimSpace(in.MovieTitle),
		PosterURL:  strings.TrimSpace(in.PosterURL),
	}
}

func favoriteLookupErr(id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("favorite", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func favoriteWriteErr(err error) error {
	if errors.Is(err, repository.ErrUserMissing) {
		return apperrors.NewBadRequest("user not found")
	}
	return apperrors.MapError(err)
}
