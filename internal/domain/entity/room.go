package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room occupancy states. Status is owned by the rental lifecycle (occupied on
// open, vacant on end); direct operator edits bypass that and are the
// operator's responsibility.
const (
	RoomStatusVacant   = "vacant"
	RoomStatusOccupied = "occupied"
)

// Room is a rentable unit in the boarding house.
type Room struct {
	ID        string
	Number    string // human-assigned, unique
	Price     decimal.Decimal
	Amenities string // free text
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
