package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Ledger categories. Bill settlement writes CategoryRent for rent bills and
// CategoryOther for extras; maintenance completion writes CategoryMaintenance.
const (
	CategoryRent        = "rent"
	CategoryMaintenance = "maintenance"
	CategoryOther       = "other"
)

// Transaction is an immutable ledger entry. Once appended it is never updated
// or deleted by any business operation.
type Transaction struct {
	ID        string
	Kind      string
	Amount    decimal.Decimal
	Source    string // human-readable origin, e.g. "Rent payment for room A1"
	Category  string
	Timestamp time.Time
}
