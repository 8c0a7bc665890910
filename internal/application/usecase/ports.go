package usecase

import (
	"context"

	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
)

// TxRunner runs multi-repository units of work inside one store transaction.
// The callback receives repositories bound to the transaction; any error
// rolls the whole unit back.
type TxRunner interface {
	// RunRental covers rental lifecycle operations: rental insert/update,
	// inline tenant creation, room status change and first-period billing.
	RunRental(ctx context.Context, fn func(
		rentals repository.RentalRepository,
		rooms repository.RoomRepository,
		tenants repository.TenantRepository,
		bills repository.BillRepository,
	) error) error

	// RunSettlement covers bill settlement: the paid-state write and the
	// income ledger append must commit or roll back together.
	RunSettlement(ctx context.Context, fn func(
		bills repository.BillRepository,
		ledger repository.TransactionRepository,
	) error) error

	// RunMaintenance covers ticket updates that append an expense entry.
	RunMaintenance(ctx context.Context, fn func(
		tickets repository.MaintenanceRepository,
		ledger repository.TransactionRepository,
	) error) error
}

// ProofStore persists a raw payment-proof upload and returns an opaque
// reference for the bill record.
type ProofStore interface {
	Save(ctx context.Context, billID string, data []byte, ext string) (string, error)
}

// ReceiptGenerator renders a receipt document for a settled bill and its
// resolved rental, tenant and room.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, bill *entity.Bill, rental *entity.Rental, tenant *entity.Tenant, room *entity.Room) ([]byte, error)
}
