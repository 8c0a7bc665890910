package dto

import "time"

// CreateTenantRequest payload for POST /api/tenants, also accepted inline
// when opening a rental for a new tenant.
type CreateTenantRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	IDNumber string `json:"id_number" validate:"required"`
	Address  string `json:"address"`
}

// UpdateTenantRequest partial update: absent (nil) fields stay unchanged.
type UpdateTenantRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IDNumber *string `json:"id_number"`
	Address  *string `json:"address"`
}

// TenantResponse tenant representation for the API.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	IDNumber  string    `json:"id_number"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
