package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental states. The transition active -> ended happens exactly once and is
// irreversible.
const (
	RentalStatusActive = "active"
	RentalStatusEnded  = "ended"
)

// Rental binds one tenant to one room at an agreed price. At most one active
// rental may exist per room at any time.
type Rental struct {
	ID        string
	TenantID  string
	RoomID    string
	StartDate time.Time
	EndDate   *time.Time      // set when the rental is ended
	Price     decimal.Decimal // snapshot of the agreed rent; may differ from the room's current price
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
