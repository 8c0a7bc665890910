package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenRentalRequest payload for POST /api/rentals. Exactly one of TenantID or
// Tenant must be given: an existing tenant id, or inline data to create one.
// StartDate defaults to now when omitted.
type OpenRentalRequest struct {
	RoomID    string               `json:"room_id" validate:"required"`
	TenantID  string               `json:"tenant_id"`
	Tenant    *CreateTenantRequest `json:"tenant"`
	Price     decimal.Decimal      `json:"price" validate:"required"`
	StartDate *time.Time           `json:"start_date"`
}

// RentalResponse rental representation for the API.
type RentalResponse struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	RoomID    string          `json:"room_id"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
