package entity

import "time"

// Tenant is a person renting (or who has rented) a room.
type Tenant struct {
	ID        string
	Name      string
	Phone     string
	Email     string // optional
	IDNumber  string // national id document (KTP)
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
