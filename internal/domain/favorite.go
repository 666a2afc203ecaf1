package domain

// Favorite marks a movie as saved by a user.
type Favorite struct {
	ID         int64
	UserID     int64
	MovieID    int64
	MovieTitle string
	PosterURL  string
	// UserEmail is populated by admin read queries joining the owner.
	UserEmail string
}
