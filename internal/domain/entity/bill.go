package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill states. unpaid -> paid happens exactly once; settlement is the only
// path that writes an income ledger entry.
const (
	BillStatusUnpaid = "unpaid"
	BillStatusPaid   = "paid"
)

// Bill kinds. At most one bill exists per (rental, month, year, kind).
const (
	BillKindRent  = "rent"
	BillKindExtra = "extra"
)

// Payment methods recorded on settlement.
const (
	PaymentCash    = "cash"
	PaymentNonCash = "non_cash"
)

// Bill is a single payable obligation for one (rental, period, kind).
type Bill struct {
	ID             string
	RentalID       string
	Month          int // 1-12
	Year           int
	Amount         decimal.Decimal
	Kind           string
	Note           string // optional
	Status         string
	PaymentMethod  string     // set on settlement
	PaidAt         *time.Time // set on settlement
	ProofReference string     // opaque reference to the uploaded payment proof
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
