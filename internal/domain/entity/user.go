package entity

import "time"

// User roles. Admin performs every mutation; owner has read access plus the
// dashboard.
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User is an operator account.
type User struct {
	ID           string
	Email        string // unique
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
