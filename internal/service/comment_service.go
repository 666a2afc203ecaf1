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

// CommentService manages movie comments for readers, authors and admins.
type CommentService struct {
	comments repository.CommentRepository
	users    repository.UserRepository
}

// CommentInput describes an admin-authored comment.
type CommentInput struct {
	MovieID int64
	UserID  int64
	Content string
}

// CommentPatch carries the fields of a comment update; nil fields are kept.
type CommentPatch struct {
	MovieID *int64
	UserID  *int64
	Content *string
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, users: users}
}

// ListForMovie returns the comments of one movie, oldest first.
func (s *CommentService) ListForMovie(ctx context.Context, movieID int64) ([]domain.Comment, error) {
	comments, err := s.comments.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// Post adds a comment authored by the caller.
func (s *CommentService) Post(ctx context.Context, userID, movieID int64, content string) (*domain.Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("token not valid")
		}
		return nil, apperrors.MapError(err)
	}

	comment := &domain.Comment{MovieID: movieID, UserID: userID, Content: strings.TrimSpace(content)}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, commentWriteErr(err)
	}
	comment.UserName = author.Name
	return comment, nil
}

// List returns every comment for administration.
func (s *CommentService) List(ctx context.Context) ([]domain.Comment, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// Get returns one comment with its author name.
func (s *CommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, commentLookupErr(id, err)
	}
	return comment, nil
}

// Create adds a comment on behalf of any existing user.
func (s *CommentService) Create(ctx context.Context, input CommentInput) (*domain.Comment, error) {
	if err := s.ensureUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{MovieID: input.MovieID, UserID: input.UserID, Content: strings.TrimSpace(input.Content)}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, commentWriteErr(err)
	}
	return s.Get(ctx, comment.ID)
}

// Update applies a partial update.
func (s *CommentService) Update(ctx context.Context, id int64, patch CommentPatch) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, commentLookupErr(id, err)
	}
	if patch.UserID != nil && *patch.UserID != comment.UserID {
		if err := s.ensureUser(ctx, *patch.UserID); err != nil {
			return nil, err
		}
		comment.UserID = *patch.UserID
	}
	if patch.MovieID != nil {
		comment.MovieID = *patch.MovieID
	}
	if patch.Content != nil {
		comment.Content = strings.TrimSpace(*patch.Content)
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, commentLookupErr(id, err)
		}
		return nil, commentWriteErr(err)
	}
	return s.Get(ctx, id)
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return commentLookupErr(id, err)
	}
	return nil
}

func (s *CommentService) ensureUser(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		return apperrors.NewBadRequest("user not found")
	}
	return nil
}

func commentLookupErr(id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("comment", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func commentWriteErr(err error) error {
	if errors.Is(err, repository.ErrUserMissing) {
		return apperrors.NewBadRequest("user not found")
	}
	return apperrors.MapError(err)
}
