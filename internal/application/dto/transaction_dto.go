package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest payload for POST /api/transactions (manual ledger
// entry). Timestamp backdates the entry; it defaults to the current time.
type CreateTransactionRequest struct {
	Kind      string          `json:"kind" validate:"required,oneof=income expense"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Source    string          `json:"source" validate:"required"`
	Category  string          `json:"category"`
	Timestamp *time.Time      `json:"timestamp"`
}

// TransactionResponse ledger entry representation for the API.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Source    string          `json:"source"`
	Category  string          `json:"category"`
	Timestamp time.Time       `json:"timestamp"`
}

// SummaryResponse monthly ledger rollup: income, expense and net for one
// calendar month.
type SummaryResponse struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
