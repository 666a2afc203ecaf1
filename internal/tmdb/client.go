// Package tmdb is a minimal client for the TMDB v3 movie metadata API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moviehub/catalog-service/internal/config"
	"github.com/moviehub/catalog-service/internal/domain"
)

// ErrNotFound is returned when TMDB answers 404.
var ErrNotFound = errors.New("tmdb: resource not found")

const (
	posterSize   = "w500"
	backdropSize = "original"
	maxErrorBody = 512
)

// StatusError carries a non-2xx TMDB response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to TMDB over HTTP.
type Client struct {
	baseURL      string
	imageBaseURL string
	token        string
	language     string
	http         *http.Client
}

// NewClient builds a client from config. httpClient may be nil.
func NewClient(cfg config.TMDBConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		token:        cfg.APIToken,
		language:     cfg.Language,
		http:         httpClient,
	}
}

type movieResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int64 `json:"genre_ids"`
	Genres       []struct {
		ID int64 `json:"id"`
	} `json:"genres"`
}

type pageResult struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// Genres lists movie genres.
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var body struct {
		Genres []domain.Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", nil, &body); err != nil {
		return nil, err
	}
	if body.Genres == nil {
		body.Genres = []domain.Genre{}
	}
	return body.Genres, nil
}

// TopRated returns a page of top rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (*domain.MoviePage, error) {
	return c.page(ctx, "/movie/top_rated", url.Values{"page": {strconv.Itoa(page)}})
}

// Discover returns a page of movies in the given genre.
func (c *Client) Discover(ctx context.Context, genreID int64, page int) (*domain.MoviePage, error) {
	return c.page(ctx, "/discover/movie", url.Values{
		"with_genres": {strconv.FormatInt(genreID, 10)},
		"page":        {strconv.Itoa(page)},
	})
}

// Search returns a page of movies matching query.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	return c.page(ctx, "/search/movie", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
}

// Movie returns the details of one movie.
func (c *Client) Movie(ctx context.Context, id int64) (*domain.Movie, error) {
	var body movieResult
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &body); err != nil {
		return nil, err
	}
	movie := c.toMovie(body)
	return &movie, nil
}

func (c *Client) page(ctx context.Context, path string, params url.Values) (*domain.MoviePage, error) {
	var body pageResult
	if err := c.get(ctx, path, params, &body); err != nil {
		return nil, err
	}
	out := &domain.MoviePage{
		Page:         body.Page,
		Results:      make([]domain.Movie, 0, len(body.Results)),
		TotalPages:   body.TotalPages,
		TotalResults: body.TotalResults,
	}
	for _, r := range body.Results {
		out.Results = append(out.Results, c.toMovie(r))
	}
	return out, nil
}

func (c *Client) toMovie(r movieResult) domain.Movie {
	genres := make([]string, 0, len(r.GenreIDs)+len(r.Genres))
	for _, id := range r.GenreIDs {
		genres = append(genres, strconv.FormatInt(id, 10))
	}
	for _, g := range r.Genres {
		genres = append(genres, strconv.FormatInt(g.ID, 10))
	}
	return domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Overview:    r.Overview,
		PosterURL:   c.imageURL(posterSize, r.PosterPath),
		BackdropURL: c.imageURL(backdropSize, r.BackdropPath),
		ReleaseDate: r.ReleaseDate,
		Rating:      r.VoteAverage,
		Genres:      genres,
	}
}

func (c *Client) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + size + path
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: statusMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	return nil
}

func statusMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.StatusMessage != "" {
		return payload.StatusMessage
	}
	return strings.TrimSpace(string(raw))
}

// Timeout reports the configured HTTP timeout, mainly for logging.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}
