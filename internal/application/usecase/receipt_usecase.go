package usecase

import (
	"context"

	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
)

// ReceiptUseCase renders a payment receipt for a settled bill.
type ReceiptUseCase struct {
	bills     repository.BillRepository
	rentals   repository.RentalRepository
	tenants   repository.TenantRepository
	rooms     repository.RoomRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase builds the use case.
func NewReceiptUseCase(
	bills repository.BillRepository,
	rentals repository.RentalRepository,
	tenants repository.TenantRepository,
	rooms repository.RoomRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{bills: bills, rentals: rentals, tenants: tenants, rooms: rooms, generator: generator}
}

// GetReceiptPDF resolves the bill with its rental, tenant and room and
// renders the receipt. Only paid bills have receipts.
func (uc *ReceiptUseCase) GetReceiptPDF(ctx context.Context, billID string) ([]byte, error) {
	bill, err := uc.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.Status != entity.BillStatusPaid {
		return nil, domain.ErrInvalidState
	}
	rental, err := uc.rentals.GetByID(ctx, bill.RentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	tenant, err := uc.tenants.GetByID(ctx, rental.TenantID)
	if err != nil {
		return nil, err
	}
	room, err := uc.rooms.GetByID(ctx, rental.RoomID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || room == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, bill, rental, tenant, room)
}
