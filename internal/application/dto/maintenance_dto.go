package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaintenanceRequest payload for POST /api/maintenance. Location is
// free text; RoomID optionally ties the ticket to a room.
type CreateMaintenanceRequest struct {
	Location    string `json:"location"`
	RoomID      string `json:"room_id"`
	Description string `json:"description" validate:"required"`
	Assignee    string `json:"assignee"`
}

// UpdateMaintenanceRequest partial update: absent (nil) fields stay unchanged.
type UpdateMaintenanceRequest struct {
	Assignee *string          `json:"assignee"`
	Status   *string          `json:"status" validate:"omitempty,oneof=open in_progress done"`
	Cost     *decimal.Decimal `json:"cost"`
}

// MaintenanceResponse ticket representation for the API.
type MaintenanceResponse struct {
	ID          string          `json:"id"`
	Location    string          `json:"location"`
	RoomID      string          `json:"room_id,omitempty"`
	Description string          `json:"description"`
	Assignee    string          `json:"assignee,omitempty"`
	Status      string          `json:"status"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
