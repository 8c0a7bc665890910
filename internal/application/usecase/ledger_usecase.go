package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

// LedgerUseCase is the append-only transaction log. Append is the only
// mutation; history is never updated or deleted.
type LedgerUseCase struct {
	ledger repository.TransactionRepository
	clk    clock.Clock
}

// NewLedgerUseCase builds the use case.
func NewLedgerUseCase(ledger repository.TransactionRepository, clk clock.Clock) *LedgerUseCase {
	return &LedgerUseCase{ledger: ledger, clk: clk}
}

// Append records a manual ledger entry, stamped with the current time unless
// the request backdates it.
func (uc *LedgerUseCase) Append(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Kind != entity.TransactionIncome && in.Kind != entity.TransactionExpense {
		return nil, domain.ErrValidation
	}
	if !in.Amount.GreaterThan(decimal.Zero) || in.Source == "" {
		return nil, domain.ErrValidation
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryOther
	}
	ts := uc.clk.Now()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}
	tx := &entity.Transaction{
		ID:        uuid.New().String(),
		Kind:      in.Kind,
		Amount:    in.Amount,
		Source:    in.Source,
		Category:  category,
		Timestamp: ts,
	}
	if err := uc.ledger.Create(ctx, tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// List returns the ledger, newest first.
func (uc *LedgerUseCase) List(ctx context.Context) ([]*dto.TransactionResponse, error) {
	txs, err := uc.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out, nil
}

// Summary sums income and expense for one calendar month, inclusive of the
// last day at 23:59:59. Month/year zero default to the current period.
func (uc *LedgerUseCase) Summary(ctx context.Context, month, year int) (*dto.SummaryResponse, error) {
	now := uc.clk.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, domain.ErrValidation
	}

	from, to := MonthBounds(month, year)
	income, err := uc.ledger.SumByKindBetween(ctx, entity.TransactionIncome, from, to)
	if err != nil {
		return nil, err
	}
	expense, err := uc.ledger.SumByKindBetween(ctx, entity.TransactionExpense, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		Month:   month,
		Year:    year,
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}, nil
}

// MonthBounds returns the inclusive [first day 00:00:00, last day 23:59:59]
// range of a calendar month in UTC. Day zero of the following month resolves
// to the last day, so 28/29/30/31-day months all come out right.
func MonthBounds(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, time.UTC)
	return from, to
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:        t.ID,
		Kind:      t.Kind,
		Amount:    t.Amount,
		Source:    t.Source,
		Category:  t.Category,
		Timestamp: t.Timestamp,
	}
}
