package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/domain/entity"
)

// TransactionRepository defines the persistence port for the append-only
// ledger. There is deliberately no Update or Delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	List(ctx context.Context) ([]*entity.Transaction, error)
	// ListRecent returns the newest entries up to limit.
	ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error)
	// SumByKindBetween sums amounts of the given kind with a timestamp in
	// [from, to] inclusive.
	SumByKindBetween(ctx context.Context, kind string, from, to time.Time) (decimal.Decimal, error)
}
