package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/moviehub/catalog-service/internal/domain"
)

// CommentRepository manages movie comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByMovie(ctx context.Context, movieID int64) ([]domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
}

type commentRepository struct {
	db DBTX
}

// NewCommentRepository builds the repository.
func NewCommentRepository(db DBTX) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `c.id, c.movie_id, c.user_id, c.content, c.created_at, u.name`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (movie_id, user_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		comment.MovieID,
		comment.UserID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	return mapOwnerErr(err)
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	const query = `
        UPDATE comments SET movie_id=$1, user_id=$2, content=$3
        WHERE id=$4`
	cmd, err := r.db.Exec(ctx, query,
		comment.MovieID,
		comment.UserID,
		comment.Content,
		comment.ID,
	)
	if err != nil {
		return mapOwnerErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	query := `
        SELECT ` + commentColumns + `
        FROM comments c JOIN users u ON u.id = c.user_id
        WHERE c.id=$1`
	return scanComment(r.db.QueryRow(ctx, query, id))
}

func (r *commentRepository) ListByMovie(ctx context.Context, movieID int64) ([]domain.Comment, error) {
	query := `
        SELECT ` + commentColumns + `
        FROM comments c JOIN users u ON u.id = c.user_id
        WHERE c.movie_id=$1
        ORDER BY c.created_at, c.id`
	return r.list(ctx, query, movieID)
}

func (r *commentRepository) List(ctx context.Context) ([]domain.Comment, error) {
	query := `
        SELECT ` + commentColumns + `
        FROM comments c JOIN users u ON u.id = c.user_id
        ORDER BY c.id`
	return r.list(ctx, query)
}

func (r *commentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *comment)
	}
	return result, rows.Err()
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.MovieID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UserName,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}
