package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
	"github.com/moviehub/catalog-service/internal/tmdb"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

// MaxMoviePage is the highest page the metadata provider serves.
const MaxMoviePage = 500

// MovieProvider fetches movie metadata. *tmdb.Client satisfies it.
type MovieProvider interface {
	Genres(ctx context.Context) ([]domain.Genre, error)
	TopRated(ctx context.Context, page int) (*domain.MoviePage, error)
	Discover(ctx context.Context, genreID int64, page int) (*domain.MoviePage, error)
	Search(ctx context.Context, query string, page int) (*domain.MoviePage, error)
	Movie(ctx context.Context, id int64) (*domain.Movie, error)
}

// MovieService proxies the metadata provider through a read-through cache.
type MovieService struct {
	provider MovieProvider
	cache    repository.MovieCache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewMovieService constructs the service. A zero ttl disables caching.
func NewMovieService(provider MovieProvider, cache repository.MovieCache, ttl time.Duration, logger *zap.Logger) *MovieService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MovieService{provider: provider, cache: cache, ttl: ttl, logger: logger}
}

// Genres lists genres.
func (s *MovieService) Genres(ctx context.Context) ([]domain.Genre, error) {
	var genres []domain.Genre
	err := s.cached(ctx, "genres", &genres, func() (any, error) {
		g, err := s.provider.Genres(ctx)
		genres = g
		return g, err
	})
	return genres, err
}

// TopRated returns a page of top rated movies.
func (s *MovieService) TopRated(ctx context.Context, page int) (*domain.MoviePage, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.page(ctx, fmt.Sprintf("top_rated:%d", page), func() (*domain.MoviePage, error) {
		return s.provider.TopRated(ctx, page)
	})
}

// Discover returns a page of movies in a genre.
func (s *MovieService) Discover(ctx context.Context, genreID int64, page int) (*domain.MoviePage, error) {
	if genreID <= 0 {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{"genre": "must be a positive genre id"})
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.page(ctx, fmt.Sprintf("discover:%d:%d", genreID, page), func() (*domain.MoviePage, error) {
		return s.provider.Discover(ctx, genreID, page)
	})
}

// Search returns a page of movies matching query.
func (s *MovieService) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{"query": "cannot be blank"})
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.page(ctx, fmt.Sprintf("search:%s:%d", strings.ToLower(query), page), func() (*domain.MoviePage, error) {
		return s.provider.Search(ctx, query, page)
	})
}

// Movie returns the details of a movie.
func (s *MovieService) Movie(ctx context.Context, id int64) (*domain.Movie, error) {
	if id <= 0 {
		return nil, apperrors.NewNotFound("movie", map[string]any{"id": id})
	}
	var movie *domain.Movie
	err := s.cached(ctx, fmt.Sprintf("movie:%d", id), &movie, func() (any, error) {
		m, err := s.provider.Movie(ctx, id)
		movie = m
		return m, err
	})
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, apperrors.NewNotFound("movie", map[string]any{"id": id})
	}
	return movie, err
}

func (s *MovieService) page(ctx context.Context, key string, fetch func() (*domain.MoviePage, error)) (*domain.MoviePage, error) {
	var page *domain.MoviePage
	err := s.cached(ctx, key, &page, func() (any, error) {
		p, err := fetch()
		page = p
		return p, err
	})
	return page, err
}

// cached serves dest from the cache or calls fetch, which must also fill
// dest. Cache failures are logged and never fail the request.
func (s *MovieService) cached(ctx context.Context, key string, dest any, fetch func() (any, error)) error {
	if s.cache != nil && s.ttl > 0 {
		found, err := s.cache.Get(ctx, key, dest)
		if err != nil {
			s.logger.Warn("movie cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return nil
		}
	}

	value, err := fetch()
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return err
		}
		s.logger.Warn("movie provider request failed", zap.String("key", key), zap.Error(err))
		return apperrors.NewUpstreamError("movie metadata provider unavailable", err)
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			s.logger.Warn("movie cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func checkPage(page int) error {
	if page < 1 || page > MaxMoviePage {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"page": fmt.Sprintf("must be between 1 and %d", MaxMoviePage),
		})
	}
	return nil
}
