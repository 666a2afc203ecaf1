package domain

// Identity is the caller context reconstructed from a verified token. It lives
// for the duration of a single request and is never persisted.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}
