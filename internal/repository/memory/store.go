// Package memory provides thread-safe in-memory repositories. They back the
// service when POSTGRES_DSN is unset and are used as fakes in tests. Missing
// rows are reported as pgx.ErrNoRows so callers treat both stores alike.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/moviehub/catalog-service/internal/domain"
	"github.com/moviehub/catalog-service/internal/repository"
)

// Store holds every table behind a single lock so that user deletion can
// cascade atomically.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users     map[int64]domain.User
	comments  map[int64]domain.Comment
	favorites map[int64]domain.Favorite

	nextUserID     int64
	nextCommentID  int64
	nextFavoriteID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:       func() time.Time { return time.Now().UTC() },
		users:     make(map[int64]domain.User),
		comments:  make(map[int64]domain.Comment),
		favorites: make(map[int64]domain.Favorite),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repository.CommentRepository { return (*commentRepo)(s) }

// Favorites returns the favorite repository view of the store.
func (s *Store) Favorites() repository.FavoriteRepository { return (*favoriteRepo)(s) }

// ---------- Users ----------

type userRepo Store

func (r *userRepo) emailTakenLocked(email string, exceptID int64) bool {
	for id, u := range r.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTakenLocked(user.Email, 0) {
		return repository.ErrEmailTaken
	}
	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = r.now()
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.emailTakenLocked(user.Email, user.ID) {
		return repository.ErrEmailTaken
	}
	user.CreatedAt = existing.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	for cid, c := range r.comments {
		if c.UserID == id {
			delete(r.comments, cid)
		}
	}
	for fid, f := range r.favorites {
		if f.UserID == id {
			delete(r.favorites, fid)
		}
	}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTakenLocked(email, 0), nil
}

func (r *userRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------- Comments ----------

type commentRepo Store

func (r *commentRepo) withAuthor(c domain.Comment) domain.Comment {
	c.UserName = r.users[c.UserID].Name
	return c
}

func (r *commentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[comment.UserID]; !ok {
		return repository.ErrUserMissing
	}
	r.nextCommentID++
	comment.ID = r.nextCommentID
	comment.CreatedAt = r.now()
	stored := *comment
	stored.UserName = ""
	r.comments[comment.ID] = stored
	return nil
}

func (r *commentRepo) Update(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.comments[comment.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if _, ok := r.users[comment.UserID]; !ok {
		return repository.ErrUserMissing
	}
	existing.MovieID = comment.MovieID
	existing.UserID = comment.UserID
	existing.Content = comment.Content
	r.comments[comment.ID] = existing
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

func (r *commentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c = r.withAuthor(c)
	return &c, nil
}

func (r *commentRepo) ListByMovie(_ context.Context, movieID int64) ([]domain.Comment, error) {
	return r.filter(func(c domain.Comment) bool { return c.MovieID == movieID }), nil
}

func (r *commentRepo) List(_ context.Context) ([]domain.Comment, error) {
	return r.filter(func(domain.Comment) bool { return true }), nil
}

func (r *commentRepo) filter(keep func(domain.Comment) bool) []domain.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if keep(c) {
			out = append(out, r.withAuthor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ---------- Favorites ----------

type favoriteRepo Store

func (r *favoriteRepo) withOwner(f domain.Favorite) domain.Favorite {
	f.UserEmail = r.users[f.UserID].Email
	return f
}

func (r *favoriteRepo) Create(_ context.Context, favorite *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[favorite.UserID]; !ok {
		return repository.ErrUserMissing
	}
	r.nextFavoriteID++
	favorite.ID = r.nextFavoriteID
	stored := *favorite
	stored.UserEmail = ""
	r.favorites[favorite.ID] = stored
	return nil
}

func (r *favoriteRepo) Update(_ context.Context, favorite *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.favorites[favorite.ID]; !ok {
		return pgx.ErrNoRows
	}
	if _, ok := r.users[favorite.UserID]; !ok {
		return repository.ErrUserMissing
	}
	stored := *favorite
	stored.UserEmail = ""
	r.favorites[favorite.ID] = stored
	return nil
}

func (r *favoriteRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.favorites[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.favorites, id)
	return nil
}

func (r *favoriteRepo) GetByID(_ context.Context, id int64) (*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.favorites[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	f = r.withOwner(f)
	return &f, nil
}

func (r *favoriteRepo) GetByUserAndMovie(_ context.Context, userID, movieID int64) (*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *domain.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID && (found == nil || f.ID < found.ID) {
			f := r.withOwner(f)
			found = &f
		}
	}
	if found == nil {
		return nil, pgx.ErrNoRows
	}
	return found, nil
}

func (r *favoriteRepo) ListByUser(_ context.Context, userID int64) ([]domain.Favorite, error) {
	return r.filter(func(f domain.Favorite) bool { return f.UserID == userID }), nil
}

func (r *favoriteRepo) List(_ context.Context) ([]domain.Favorite, error) {
	return r.filter(func(domain.Favorite) bool { return true }), nil
}

func (r *favoriteRepo) filter(keep func(domain.Favorite) bool) []domain.Favorite {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Favorite, 0)
	for _, f := range r.favorites {
		if keep(f) {
			out = append(out, r.withOwner(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
