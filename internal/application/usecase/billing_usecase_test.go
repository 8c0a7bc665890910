package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
)

func newBillingUC(f *fixture, proofs *fakeProofStore) *usecase.BillingUseCase {
	if proofs == nil {
		proofs = newFakeProofStore()
	}
	return usecase.NewBillingUseCase(f.txRunner, f.bills, f.rentals, f.rooms, f.tenants, proofs, f.clk)
}

func seedRentedRoom(f *fixture) {
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusOccupied)
	f.addTenant("tenant-1", "Siti")
	f.addRental("rental-1", "tenant-1", "room-1", 1500000, entity.RentalStatusActive)
}

func TestGeneratePeriodBill(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	uc := newBillingUC(f, nil)

	out, err := uc.GeneratePeriodBill(context.Background(), dto.CreateBillRequest{
		RentalID: "rental-1",
		Month:    9,
		Year:     2026,
		Amount:   decimal.NewFromInt(1500000),
		Kind:     entity.BillKindRent,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusUnpaid, out.Status)
	assert.Equal(t, 9, out.Month)
}

func TestGeneratePeriodBill_DuplicatePeriod(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 9, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	_, err := uc.GeneratePeriodBill(context.Background(), dto.CreateBillRequest{
		RentalID: "rental-1",
		Month:    9,
		Year:     2026,
		Amount:   decimal.NewFromInt(1500000),
		Kind:     entity.BillKindRent,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGeneratePeriodBill_ExtraAllowedNextToRent(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 9, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	out, err := uc.GeneratePeriodBill(context.Background(), dto.CreateBillRequest{
		RentalID: "rental-1",
		Month:    9,
		Year:     2026,
		Amount:   decimal.NewFromInt(100000),
		Kind:     entity.BillKindExtra,
		Note:     "Laundry",
	})
	require.NoError(t, err, "an extra bill may share the period with the rent bill")
	assert.Equal(t, entity.BillKindExtra, out.Kind)
}

func TestGeneratePeriodBill_Validation(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	uc := newBillingUC(f, nil)

	cases := []dto.CreateBillRequest{
		{RentalID: "rental-1", Month: 0, Year: 2026, Amount: decimal.NewFromInt(1), Kind: entity.BillKindRent},
		{RentalID: "rental-1", Month: 13, Year: 2026, Amount: decimal.NewFromInt(1), Kind: entity.BillKindRent},
		{RentalID: "rental-1", Month: 9, Year: 2026, Amount: decimal.Zero, Kind: entity.BillKindRent},
		{RentalID: "rental-1", Month: 9, Year: 2026, Amount: decimal.NewFromInt(1), Kind: "subscription"},
	}
	for _, in := range cases {
		_, err := uc.GeneratePeriodBill(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestGenerateMonthlyRentBills_Idempotent(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addRoom("room-2", "A2", 1200000, entity.RoomStatusOccupied)
	f.addTenant("tenant-2", "Budi")
	f.addRental("rental-2", "tenant-2", "room-2", 1200000, entity.RentalStatusActive)
	// ended rentals are not billed
	f.addRoom("room-3", "A3", 1000000, entity.RoomStatusVacant)
	f.addTenant("tenant-3", "Andi")
	f.addRental("rental-3", "tenant-3", "room-3", 1000000, entity.RentalStatusEnded)
	uc := newBillingUC(f, nil)

	first, err := uc.GenerateMonthlyRentBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, first.Month)
	assert.Equal(t, 2026, first.Year)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.AlreadyBilled)

	second, err := uc.GenerateMonthlyRentBills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created, "a rerun must not bill the same period twice")
	assert.Equal(t, 2, second.AlreadyBilled)

	bill, err := f.bills.GetByPeriod(context.Background(), "rental-2", 8, 2026, entity.BillKindRent)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.True(t, bill.Amount.Equal(decimal.NewFromInt(1200000)), "the bill amount comes from the rental price")
}

func TestMarkPaid_SettlesBillAndAppendsIncome(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	out, err := uc.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: entity.PaymentNonCash})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, out.Status)
	assert.Equal(t, entity.PaymentNonCash, out.PaymentMethod)
	require.NotNil(t, out.PaidAt)
	assert.Equal(t, f.clk.Now(), *out.PaidAt)

	require.Len(t, f.store.transactions, 1)
	tx := f.store.transactions[0]
	assert.Equal(t, entity.TransactionIncome, tx.Kind)
	assert.Equal(t, entity.CategoryRent, tx.Category)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1500000)))
	assert.Equal(t, "Rent payment for room A1 (Siti), August 2026", tx.Source)
}

func TestMarkPaid_ExtraBillUsesNoteAndOtherCategory(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	now := f.clk.Now()
	f.store.bills["bill-1"] = entity.Bill{
		ID: "bill-1", RentalID: "rental-1", Month: 8, Year: 2026,
		Amount: decimal.NewFromInt(100000), Kind: entity.BillKindExtra,
		Note: "Laundry", Status: entity.BillStatusUnpaid,
		CreatedAt: now, UpdatedAt: now,
	}
	uc := newBillingUC(f, nil)

	_, err := uc.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	require.Len(t, f.store.transactions, 1)
	tx := f.store.transactions[0]
	assert.Equal(t, entity.CategoryOther, tx.Category)
	assert.Equal(t, "Laundry for room A1 (Siti), August 2026", tx.Source)
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusPaid)
	uc := newBillingUC(f, nil)

	_, err := uc.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, f.store.transactions, "a repeated payment must not add a second income entry")
}

func TestMarkPaid_LostRaceAppendsNoSecondEntry(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	// a competing settlement commits after this request read the bill as
	// unpaid but before its own transaction starts
	now := f.clk.Now()
	f.store.beforeSettlementTx = func() {
		b := f.store.bills["bill-1"]
		b.Status = entity.BillStatusPaid
		b.PaymentMethod = entity.PaymentCash
		b.PaidAt = &now
		f.store.bills["bill-1"] = b
		f.store.transactions = append(f.store.transactions, entity.Transaction{
			ID: "tx-winner", Kind: entity.TransactionIncome,
			Amount: decimal.NewFromInt(1500000), Category: entity.CategoryRent,
			Source: "Rent payment for room A1 (Siti), August 2026", Timestamp: now,
		})
	}

	_, err := uc.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: entity.PaymentNonCash})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.Len(t, f.store.transactions, 1, "one settled bill, one income entry")
	assert.Equal(t, entity.PaymentCash, f.store.bills["bill-1"].PaymentMethod,
		"the losing settlement must not overwrite the winner's fields")
}

func TestMarkPaid_InvalidMethod(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	_, err := uc.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMarkPaid_RollsBackWhenLedgerFails(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	f.store.failLedgerCreate = errors.New("store down")
	uc := newBillingUC(f, nil)

	_, err := uc.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: entity.PaymentCash})
	require.Error(t, err)

	assert.Equal(t, entity.BillStatusUnpaid, f.store.bills["bill-1"].Status,
		"a failed settlement must leave the bill unpaid")
	assert.Empty(t, f.store.transactions)
}

func TestAttachProof(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	proofs := newFakeProofStore()
	uc := newBillingUC(f, proofs)

	out, err := uc.AttachProof(context.Background(), "bill-1", []byte("png-bytes"), "png")
	require.NoError(t, err)
	assert.Equal(t, "bill-1.png", out.ProofReference)
	assert.Equal(t, []byte("png-bytes"), proofs.saved["bill-1.png"])

	// re-upload overwrites the reference
	out, err = uc.AttachProof(context.Background(), "bill-1", []byte("jpg-bytes"), "jpg")
	require.NoError(t, err)
	assert.Equal(t, "bill-1.jpg", out.ProofReference)
}

func TestAttachProof_EmptyFile(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	_, err := uc.AttachProof(context.Background(), "bill-1", nil, "png")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListBills_ScopedToRental(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addRoom("room-2", "A2", 1200000, entity.RoomStatusOccupied)
	f.addTenant("tenant-2", "Budi")
	f.addRental("rental-2", "tenant-2", "room-2", 1200000, entity.RentalStatusActive)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	f.addBill("bill-2", "rental-2", 8, 2026, 1200000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	all, err := uc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := uc.List(context.Background(), "rental-2", "")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "bill-2", scoped[0].ID)
}

func TestListBills_FilteredByStatus(t *testing.T) {
	f := newFixture()
	seedRentedRoom(f)
	f.addBill("bill-1", "rental-1", 7, 2026, 1500000, entity.BillKindRent, entity.BillStatusPaid)
	f.addBill("bill-2", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	uc := newBillingUC(f, nil)

	unpaid, err := uc.List(context.Background(), "rental-1", entity.BillStatusUnpaid)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, "bill-2", unpaid[0].ID)

	_, err = uc.List(context.Background(), "", "overdue")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
