package domain

import "time"

// User is the sole identity entity: a catalog member or administrator.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Role derives the caller role from the persisted admin flag.
func (u *User) Role() Role {
	return RoleFromAdminFlag(u.IsAdmin)
}
