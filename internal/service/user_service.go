package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/moviehub/catalog-service/internal/auth"
	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

// UserService implements account administration.
type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

// UserCreateInput describes an account created by an admin.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// UserPatch carries the fields of an account update; nil fields are kept.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// List returns every account ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupErr(id, err)
	}
	return user, nil
}

// Create adds an account with the requested admin flag.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, emailConflict(email)
	}

	hash, err := hashPassword(s.hasher, input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      input.IsAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, emailConflict(email)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies a partial update. A changed email must still be unique.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupErr(id, err)
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if email != user.Email {
			exists, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, apperrors.MapError(err)
			}
			if exists {
				return nil, emailConflict(email)
			}
			user.Email = email
		}
	}
	if patch.Password != nil {
		hash, err := hashPassword(s.hasher, *patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if patch.IsAdmin != nil {
		user.IsAdmin = *patch.IsAdmin
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, emailConflict(user.Email)
		}
		return nil, userLookupErr(id, err)
	}
	return user, nil
}

// Delete removes an account together with its comments and favorites.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userLookupErr(id, err)
	}
	return nil
}

func userLookupErr(id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
