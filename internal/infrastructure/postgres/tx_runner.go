package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kosman/kosman-api/internal/application/usecase"
	"github.com/kosman/kosman-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner runs use case callbacks inside a single database transaction,
// handing the callback repositories bound to that transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (t *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RunRental covers rental open/end: rental rows, room occupancy, inline
// tenant creation and the first period bill commit or roll back together.
func (t *TxRunner) RunRental(ctx context.Context, fn func(rentals repository.RentalRepository, rooms repository.RoomRepository, tenants repository.TenantRepository, bills repository.BillRepository) error) error {
	return t.run(ctx, func(q Querier) error {
		return fn(NewRentalRepository(q), NewRoomRepository(q), NewTenantRepository(q), NewBillRepository(q))
	})
}

// RunSettlement covers bill settlement: the bill update and its ledger
// entry commit or roll back together.
func (t *TxRunner) RunSettlement(ctx context.Context, fn func(bills repository.BillRepository, ledger repository.TransactionRepository) error) error {
	return t.run(ctx, func(q Querier) error {
		return fn(NewBillRepository(q), NewTransactionRepository(q))
	})
}

// RunMaintenance covers ticket completion: the ticket update and its
// expense entry commit or roll back together.
func (t *TxRunner) RunMaintenance(ctx context.Context, fn func(tickets repository.MaintenanceRepository, ledger repository.TransactionRepository) error) error {
	return t.run(ctx, func(q Querier) error {
		return fn(NewMaintenanceRepository(q), NewTransactionRepository(q))
	})
}
