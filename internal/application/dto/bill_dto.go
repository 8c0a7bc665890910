package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest payload for POST /api/bills (manual period bill).
type CreateBillRequest struct {
	RentalID string          `json:"rental_id" validate:"required"`
	Month    int             `json:"month" validate:"required,min=1,max=12"`
	Year     int             `json:"year" validate:"required,min=2000"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Kind     string          `json:"kind" validate:"required,oneof=rent extra"`
	Note     string          `json:"note"`
}

// PayBillRequest payload for POST /api/bills/:id/pay.
type PayBillRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash non_cash"`
}

// GenerateBillsResponse outcome of the monthly rent-bill generator.
type GenerateBillsResponse struct {
	Month         int `json:"month"`
	Year          int `json:"year"`
	Created       int `json:"created"`
	AlreadyBilled int `json:"already_billed"`
}

// BillResponse bill representation for the API.
type BillResponse struct {
	ID             string          `json:"id"`
	RentalID       string          `json:"rental_id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           string          `json:"kind"`
	Note           string          `json:"note,omitempty"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	ProofReference string          `json:"proof_reference,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
