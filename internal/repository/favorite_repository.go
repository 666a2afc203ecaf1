package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/moviehub/catalog-service/internal/domain"
)

// FavoriteRepository manages saved movies.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Update(ctx context.Context, favorite *domain.Favorite) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Favorite, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	List(ctx context.Context) ([]domain.Favorite, error)
}

type favoriteRepository struct {
	db DBTX
}

// NewFavoriteRepository builds the repository.
func NewFavoriteRepository(db DBTX) FavoriteRepository {
	return &favoriteRepository{db: db}
}

const favoriteColumns = `f.id, f.user_id, f.movie_id, f.movie_title, f.poster_url, u.email`

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (user_id, movie_id, movie_title, poster_url)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		favorite.UserID,
		favorite.MovieID,
		favorite.MovieTitle,
		favorite.PosterURL,
	).Scan(&favorite.ID)
	return mapOwnerErr(err)
}

func (r *favoriteRepository) Update(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        UPDATE favorites SET user_id=$1, movie_id=$2, movie_title=$3, poster_url=$4
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		favorite.UserID,
		favorite.MovieID,
		favorite.MovieTitle,
		favorite.PosterURL,
		favorite.ID,
	)
	if err != nil {
		return mapOwnerErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) GetByID(ctx context.Context, id int64) (*domain.Favorite, error) {
	query := `
        SELECT ` + favoriteColumns + `
        FROM favorites f JOIN users u ON u.id = f.user_id
        WHERE f.id=$1`
	return scanFavorite(r.db.QueryRow(ctx, query, id))
}

func (r *favoriteRepository) GetByUserAndMovie(ctx context.Context, userID, movieID int64) (*domain.Favorite, error) {
	query := `
        SELECT ` + favoriteColumns + `
        FROM favorites f JOIN users u ON u.id = f.user_id
        WHERE f.user_id=$1 AND f.movie_id=$2
        ORDER BY f.id
        LIMIT 1`
	return scanFavorite(r.db.QueryRow(ctx, query, userID, movieID))
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	query := `
        SELECT ` + favoriteColumns + `
        FROM favorites f JOIN users u ON u.id = f.user_id
        WHERE f.user_id=$1
        ORDER BY f.id`
	return r.list(ctx, query, userID)
}

func (r *favoriteRepository) List(ctx context.Context) ([]domain.Favorite, error) {
	query := `
        SELECT ` + favoriteColumns + `
        FROM favorites f JOIN users u ON u.id = f.user_id
        ORDER BY f.id`
	return r.list(ctx, query)
}

func (r *favoriteRepository) list(ctx context.Context, query string, args ...any) ([]domain.Favorite, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Favorite, 0)
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *favorite)
	}
	return result, rows.Err()
}

func scanFavorite(row pgx.Row) (*domain.Favorite, error) {
	var favorite domain.Favorite
	if err := row.Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.MovieID,
		&favorite.MovieTitle,
		&favorite.PosterURL,
		&favorite.UserEmail,
	); err != nil {
		return nil, err
	}
	return &favorite, nil
}
