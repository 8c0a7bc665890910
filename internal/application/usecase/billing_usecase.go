package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

// BillingUseCase generates period bills, runs the monthly rent generator and
// settles bills. Settlement and its income ledger entry commit as one
// transaction.
type BillingUseCase struct {
	txRunner TxRunner
	bills    repository.BillRepository
	rentals  repository.RentalRepository
	rooms    repository.RoomRepository
	tenants  repository.TenantRepository
	proofs   ProofStore
	clk      clock.Clock
}

// NewBillingUseCase builds the use case.
func NewBillingUseCase(
	txRunner TxRunner,
	bills repository.BillRepository,
	rentals repository.RentalRepository,
	rooms repository.RoomRepository,
	tenants repository.TenantRepository,
	proofs ProofStore,
	clk clock.Clock,
) *BillingUseCase {
	return &BillingUseCase{
		txRunner: txRunner,
		bills:    bills,
		rentals:  rentals,
		rooms:    rooms,
		tenants:  tenants,
		proofs:   proofs,
		clk:      clk,
	}
}

// GeneratePeriodBill creates one bill for (rental, month, year, kind). Fails
// with ErrConflict when that period and kind is already billed.
func (uc *BillingUseCase) GeneratePeriodBill(ctx context.Context, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if in.Month < 1 || in.Month > 12 || in.Year < 1 {
		return nil, domain.ErrValidation
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrValidation
	}
	if in.Kind != entity.BillKindRent && in.Kind != entity.BillKindExtra {
		return nil, domain.ErrValidation
	}
	rental, err := uc.rentals.GetByID(ctx, in.RentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.bills.GetByPeriod(ctx, in.RentalID, in.Month, in.Year, in.Kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	now := uc.clk.Now()
	bill := &entity.Bill{
		ID:        uuid.New().String(),
		RentalID:  in.RentalID,
		Month:     in.Month,
		Year:      in.Year,
		Amount:    in.Amount,
		Kind:      in.Kind,
		Note:      in.Note,
		Status:    entity.BillStatusUnpaid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// GenerateMonthlyRentBills creates this month's rent bill for every active
// rental. Already-billed periods are counted and skipped, so the operation is
// idempotent and safe for a scheduler to retry.
func (uc *BillingUseCase) GenerateMonthlyRentBills(ctx context.Context) (*dto.GenerateBillsResponse, error) {
	now := uc.clk.Now()
	month, year := int(now.Month()), now.Year()

	rentals, err := uc.rentals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.GenerateBillsResponse{Month: month, Year: year}
	for _, rental := range rentals {
		existing, err := uc.bills.GetByPeriod(ctx, rental.ID, month, year, entity.BillKindRent)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			out.AlreadyBilled++
			continue
		}
		bill := &entity.Bill{
			ID:        uuid.New().String(),
			RentalID:  rental.ID,
			Month:     month,
			Year:      year,
			Amount:    rental.Price,
			Kind:      entity.BillKindRent,
			Status:    entity.BillStatusUnpaid,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.bills.Create(ctx, bill); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// lost an insert race with a concurrent generator run
				out.AlreadyBilled++
				continue
			}
			return nil, err
		}
		out.Created++
	}
	return out, nil
}

// MarkPaid settles a bill: sets it paid and appends the income ledger entry
// in one transaction, so neither effect exists without the other.
func (uc *BillingUseCase) MarkPaid(ctx context.Context, billID string, in dto.PayBillRequest) (*dto.BillResponse, error) {
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentNonCash {
		return nil, domain.ErrValidation
	}
	bill, err := uc.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.Status == entity.BillStatusPaid {
		return nil, domain.ErrInvalidState
	}

	source, err := uc.settlementSource(ctx, bill)
	if err != nil {
		return nil, err
	}
	category := entity.CategoryOther
	if bill.Kind == entity.BillKindRent {
		category = entity.CategoryRent
	}

	now := uc.clk.Now()
	bill.Status = entity.BillStatusPaid
	bill.PaymentMethod = in.PaymentMethod
	bill.PaidAt = &now
	bill.UpdatedAt = now

	err = uc.txRunner.RunSettlement(ctx, func(
		bills repository.BillRepository,
		ledger repository.TransactionRepository,
	) error {
		// The conditional write turns a settlement that lost a race into
		// ErrInvalidState here, rolling back the ledger append with it.
		if err := bills.MarkPaid(ctx, bill); err != nil {
			return err
		}
		return ledger.Create(ctx, &entity.Transaction{
			ID:        uuid.New().String(),
			Kind:      entity.TransactionIncome,
			Amount:    bill.Amount,
			Source:    source,
			Category:  category,
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// AttachProof stores the uploaded payment proof and records its reference on
// the bill. Re-uploads overwrite the previous reference.
func (uc *BillingUseCase) AttachProof(ctx context.Context, billID string, data []byte, ext string) (*dto.BillResponse, error) {
	if len(data) == 0 {
		return nil, domain.ErrValidation
	}
	bill, err := uc.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	ref, err := uc.proofs.Save(ctx, billID, data, ext)
	if err != nil {
		return nil, err
	}
	bill.ProofReference = ref
	bill.UpdatedAt = uc.clk.Now()
	if err := uc.bills.Update(ctx, bill); err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// GetByID fetches one bill.
func (uc *BillingUseCase) GetByID(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return toBillResponse(bill), nil
}

// List returns all bills, optionally scoped to one rental and/or one status.
func (uc *BillingUseCase) List(ctx context.Context, rentalID, status string) ([]*dto.BillResponse, error) {
	if status != "" && status != entity.BillStatusUnpaid && status != entity.BillStatusPaid {
		return nil, fmt.Errorf("%w: unknown bill status %q", domain.ErrValidation, status)
	}
	var bills []*entity.Bill
	var err error
	if rentalID != "" {
		bills, err = uc.bills.ListByRental(ctx, rentalID)
	} else {
		bills, err = uc.bills.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, toBillResponse(b))
	}
	return out, nil
}

// settlementSource resolves rental -> room -> tenant into the ledger source
// text, e.g. `Rent payment for room A1 (Jane)`.
func (uc *BillingUseCase) settlementSource(ctx context.Context, bill *entity.Bill) (string, error) {
	rental, err := uc.rentals.GetByID(ctx, bill.RentalID)
	if err != nil {
		return "", err
	}
	if rental == nil {
		return "", domain.ErrNotFound
	}
	room, err := uc.rooms.GetByID(ctx, rental.RoomID)
	if err != nil {
		return "", err
	}
	if room == nil {
		return "", domain.ErrNotFound
	}
	tenant, err := uc.tenants.GetByID(ctx, rental.TenantID)
	if err != nil {
		return "", err
	}
	if tenant == nil {
		return "", domain.ErrNotFound
	}
	if bill.Kind == entity.BillKindExtra {
		label := bill.Note
		if label == "" {
			label = "extra charge"
		}
		return fmt.Sprintf("%s for room %s (%s), %s", label, room.Number, tenant.Name, periodLabel(bill.Month, bill.Year)), nil
	}
	return fmt.Sprintf("Rent payment for room %s (%s), %s", room.Number, tenant.Name, periodLabel(bill.Month, bill.Year)), nil
}

func periodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

func toBillResponse(b *entity.Bill) *dto.BillResponse {
	return &dto.BillResponse{
		ID:             b.ID,
		RentalID:       b.RentalID,
		Month:          b.Month,
		Year:           b.Year,
		Amount:         b.Amount,
		Kind:           b.Kind,
		Note:           b.Note,
		Status:         b.Status,
		PaymentMethod:  b.PaymentMethod,
		PaidAt:         b.PaidAt,
		ProofReference: b.ProofReference,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
