package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
	"github.com/moviehub/catalog-service/internal/tmdb"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

type fakeProvider struct {
	calls map[string]int
	err   error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{calls: map[string]int{}}
}

func (f *fakeProvider) Genres(context.Context) ([]domain.Genre, error) {
	f.calls["genres"]++
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Genre{{ID: 18, Name: "Drama"}}, nil
}

func (f *fakeProvider) TopRated(_ context.Context, page int) (*domain.MoviePage, error) {
	f.calls["top_rated"]++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.MoviePage{Page: page, Results: []domain.Movie{{ID: 278, Title: "The Shawshank Redemption"}}}, nil
}

func (f *fakeProvider) Discover(_ context.Context, _ int64, page int) (*domain.MoviePage, error) {
	f.calls["discover"]++
	return &domain.MoviePage{Page: page, Results: []domain.Movie{}}, f.err
}

func (f *fakeProvider) Search(_ context.Context, query string, page int) (*domain.MoviePage, error) {
	f.calls["search:"+query]++
	return &domain.MoviePage{Page: page, Results: []domain.Movie{{ID: 550, Title: "Fight Club"}}}, f.err
}

func (f *fakeProvider) Movie(_ context.Context, id int64) (*domain.Movie, error) {
	f.calls["movie"]++
	if id == 404 {
		return nil, tmdb.ErrNotFound
	}
	return &domain.Movie{ID: id, Title: "Fight Club"}, f.err
}

func newMovieCache(t *testing.T) repository.MovieCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repository.NewMovieCache(client)
}

func TestMovieService_CachesResponses(t *testing.T) {
	provider := newFakeProvider()
	svc := NewMovieService(provider, newMovieCache(t), time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		genres, err := svc.Genres(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Genre{{ID: 18, Name: "Drama"}}, genres)

		page, err := svc.TopRated(ctx, 1)
		require.NoError(t, err)
		require.Len(t, page.Results, 1)

		movie, err := svc.Movie(ctx, 550)
		require.NoError(t, err)
		assert.Equal(t, "Fight Club", movie.Title)
	}

	assert.Equal(t, 1, provider.calls["genres"])
	assert.Equal(t, 1, provider.calls["top_rated"])
	assert.Equal(t, 1, provider.calls["movie"])

	_, err := svc.TopRated(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls["top_rated"])
}

func TestMovieService_NoCache(t *testing.T) {
	provider := newFakeProvider()
	svc := NewMovieService(provider, nil, 0, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Search(context.Background(), "fight club", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, provider.calls["search:fight club"])
}

func TestMovieService_Validation(t *testing.T) {
	svc := NewMovieService(newFakeProvider(), nil, 0, nil)
	ctx := context.Background()

	_, err := svc.Search(ctx, "   ", 1)
	requireDomainError(t, err, http.StatusBadRequest, apperrors.CodeValidationFailed)

	_, err = svc.TopRated(ctx, 0)
	requireDomainError(t, err, http.StatusBadRequest, apperrors.CodeValidationFailed)

	_, err = svc.Discover(ctx, 18, MaxMoviePage+1)
	requireDomainError(t, err, http.StatusBadRequest, apperrors.CodeValidationFailed)

	_, err = svc.Discover(ctx, 0, 1)
	requireDomainError(t, err, http.StatusBadRequest, apperrors.CodeValidationFailed)
}

func TestMovieService_ProviderErrors(t *testing.T) {
	provider := newFakeProvider()
	svc := NewMovieService(provider, newMovieCache(t), time.Minute, nil)
	ctx := context.Background()

	_, err := svc.Movie(ctx, 404)
	requireDomainError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	provider.err = errors.New("dial tcp: timeout")
	_, err = svc.Genres(ctx)
	requireDomainError(t, err, http.StatusBadGateway, apperrors.CodeUpstreamError)
}
