package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRoomRequest payload for POST /api/rooms.
type CreateRoomRequest struct {
	Number    string          `json:"number" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Amenities string          `json:"amenities"`
}

// UpdateRoomRequest partial update: absent (nil) fields stay unchanged.
// Status edits here bypass the rental-consistency rules and are the
// operator's responsibility.
type UpdateRoomRequest struct {
	Number    *string          `json:"number"`
	Price     *decimal.Decimal `json:"price"`
	Amenities *string          `json:"amenities"`
	Status    *string          `json:"status" validate:"omitempty,oneof=vacant occupied"`
}

// RoomResponse room representation for the API.
type RoomResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Price     decimal.Decimal `json:"price"`
	Amenities string          `json:"amenities"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
