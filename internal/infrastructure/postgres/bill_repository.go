package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo BillRepository implementation (usable with pool or tx).
type BillRepo struct {
	q Querier
}

func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, rental_id, month, year, amount, kind, note, status, payment_method, paid_at, proof_reference, created_at, updated_at`

// Create persists a new bill. The unique constraint on (rental_id, month,
// year, kind) maps a duplicate period to domain.ErrConflict.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.RentalID, bill.Month, bill.Year, bill.Amount, bill.Kind, bill.Note,
		bill.Status, bill.PaymentMethod, bill.PaidAt, bill.ProofReference, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID fetches a bill by id, (nil, nil) when absent.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	return r.getOne(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id)
}

// GetByPeriod fetches the bill for a rental's billing period, (nil, nil)
// when the period has not been billed.
func (r *BillRepo) GetByPeriod(ctx context.Context, rentalID string, month, year int, kind string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE rental_id = $1 AND month = $2 AND year = $3 AND kind = $4`
	return r.getOne(ctx, query, rentalID, month, year, kind)
}

func (r *BillRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&bill.ID, &bill.RentalID, &bill.Month, &bill.Year, &bill.Amount, &bill.Kind, &bill.Note,
		&bill.Status, &bill.PaymentMethod, &bill.PaidAt, &bill.ProofReference, &bill.CreatedAt, &bill.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &bill, nil
}

// List returns all bills, newest period first.
func (r *BillRepo) List(ctx context.Context) ([]*entity.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills ORDER BY year DESC, month DESC, created_at DESC`)
}

// ListByRental returns a rental's bills, newest period first.
func (r *BillRepo) ListByRental(ctx context.Context, rentalID string) ([]*entity.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills WHERE rental_id = $1 ORDER BY year DESC, month DESC, created_at DESC`, rentalID)
}

// ListUnpaidOldest returns the oldest unpaid bills up to limit.
func (r *BillRepo) ListUnpaidOldest(ctx context.Context, limit int) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE status = 'unpaid' ORDER BY year, month, created_at LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *BillRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Bill, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var bill entity.Bill
		if err := rows.Scan(
			&bill.ID, &bill.RentalID, &bill.Month, &bill.Year, &bill.Amount, &bill.Kind, &bill.Note,
			&bill.Status, &bill.PaymentMethod, &bill.PaidAt, &bill.ProofReference, &bill.CreatedAt, &bill.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &bill)
	}
	return list, rows.Err()
}

// CountByStatus counts bills in the given status.
func (r *BillRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bills WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return count, nil
}

// Update writes the settlement fields (status, payment, proof).
func (r *BillRepo) Update(ctx context.Context, bill *entity.Bill) error {
	query := `
		UPDATE bills SET status = $2, payment_method = $3, paid_at = $4,
			proof_reference = $5, note = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.Status, bill.PaymentMethod, bill.PaidAt,
		bill.ProofReference, bill.Note, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	return nil
}

// MarkPaid writes the settlement fields with a status predicate, so a bill
// settled by a concurrent request matches zero rows instead of being paid
// twice.
func (r *BillRepo) MarkPaid(ctx context.Context, bill *entity.Bill) error {
	query := `
		UPDATE bills SET status = $2, payment_method = $3, paid_at = $4, updated_at = $5
		WHERE id = $1 AND status = 'unpaid'`
	tag, err := r.q.Exec(ctx, query,
		bill.ID, bill.Status, bill.PaymentMethod, bill.PaidAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("settle bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}
