package domain

import "time"

// Comment is a user remark attached to a movie.
type Comment struct {
	ID        int64
	MovieID   int64
	UserID    int64
	Content   string
	CreatedAt time.Time
	// UserName is populated by read queries joining the author.
	UserName string
}
