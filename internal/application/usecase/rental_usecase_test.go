package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
)

func newRentalUC(f *fixture) *usecase.RentalUseCase {
	return usecase.NewRentalUseCase(f.txRunner, f.rentals, f.rooms, f.tenants, f.clk)
}

func TestOpenRental_OccupiesRoomAndCreatesFirstBill(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusVacant)
	f.addTenant("tenant-1", "Siti")
	uc := newRentalUC(f)

	out, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:   "room-1",
		TenantID: "tenant-1",
		Price:    decimal.NewFromInt(1500000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RentalStatusActive, out.Status)
	assert.Equal(t, "tenant-1", out.TenantID)

	room := f.store.rooms["room-1"]
	assert.Equal(t, entity.RoomStatusOccupied, room.Status)

	bill, err := f.bills.GetByPeriod(context.Background(), out.ID, 8, 2026, entity.BillKindRent)
	require.NoError(t, err)
	require.NotNil(t, bill, "opening a rental must create the first rent bill")
	assert.Equal(t, entity.BillStatusUnpaid, bill.Status)
	assert.True(t, bill.Amount.Equal(decimal.NewFromInt(1500000)))
}

func TestOpenRental_InlineTenantIsCreated(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusVacant)
	uc := newRentalUC(f)

	out, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID: "room-1",
		Tenant: &dto.CreateTenantRequest{
			Name:     "Budi",
			Phone:    "0813000000",
			IDNumber: "3174000000000002",
		},
		Price: decimal.NewFromInt(1200000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.TenantID)

	tenant, err := f.tenants.GetByID(context.Background(), out.TenantID)
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, "Budi", tenant.Name)
}

func TestOpenRental_ExplicitStartDateSetsBillPeriod(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusVacant)
	f.addTenant("tenant-1", "Siti")
	uc := newRentalUC(f)

	start := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:    "room-1",
		TenantID:  "tenant-1",
		Price:     decimal.NewFromInt(1500000),
		StartDate: &start,
	})
	require.NoError(t, err)

	bill, err := f.bills.GetByPeriod(context.Background(), out.ID, 12, 2026, entity.BillKindRent)
	require.NoError(t, err)
	require.NotNil(t, bill, "first bill must cover the start date's month")
}

func TestOpenRental_RoomAlreadyRented(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusOccupied)
	f.addTenant("tenant-1", "Siti")
	f.addTenant("tenant-2", "Budi")
	f.addRental("rental-1", "tenant-1", "room-1", 1500000, entity.RentalStatusActive)
	uc := newRentalUC(f)

	_, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:   "room-1",
		TenantID: "tenant-2",
		Price:    decimal.NewFromInt(1500000),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOpenRental_ExactlyOneTenantInput(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusVacant)
	f.addTenant("tenant-1", "Siti")
	uc := newRentalUC(f)

	// neither
	_, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID: "room-1",
		Price:  decimal.NewFromInt(1500000),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// both
	_, err = uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:   "room-1",
		TenantID: "tenant-1",
		Tenant:   &dto.CreateTenantRequest{Name: "X", Phone: "1", IDNumber: "2"},
		Price:    decimal.NewFromInt(1500000),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOpenRental_RoomNotFound(t *testing.T) {
	f := newFixture()
	f.addTenant("tenant-1", "Siti")
	uc := newRentalUC(f)

	_, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:   "missing",
		TenantID: "tenant-1",
		Price:    decimal.NewFromInt(1500000),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpenRental_NonPositivePrice(t *testing.T) {
	f := newFixture()
	uc := newRentalUC(f)

	_, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:   "room-1",
		TenantID: "tenant-1",
		Price:    decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOpenRental_RollsBackOnFailure(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusVacant)
	f.addTenant("tenant-1", "Siti")
	f.store.failRoomStatusUpdate = errors.New("store down")
	uc := newRentalUC(f)

	_, err := uc.Open(context.Background(), dto.OpenRentalRequest{
		RoomID:   "room-1",
		TenantID: "tenant-1",
		Price:    decimal.NewFromInt(1500000),
	})
	require.Error(t, err)

	assert.Empty(t, f.store.rentals, "failed open must leave no rental behind")
	assert.Empty(t, f.store.bills, "failed open must leave no bill behind")
	assert.Equal(t, entity.RoomStatusVacant, f.store.rooms["room-1"].Status)
}

func TestEndRental_VacatesRoom(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusOccupied)
	f.addTenant("tenant-1", "Siti")
	f.addRental("rental-1", "tenant-1", "room-1", 1500000, entity.RentalStatusActive)
	uc := newRentalUC(f)

	out, err := uc.End(context.Background(), "rental-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RentalStatusEnded, out.Status)
	require.NotNil(t, out.EndDate)
	assert.Equal(t, f.clk.Now(), *out.EndDate)

	assert.Equal(t, entity.RoomStatusVacant, f.store.rooms["room-1"].Status)
}

func TestEndRental_UnpaidBillsStayPayable(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusOccupied)
	f.addTenant("tenant-1", "Siti")
	f.addRental("rental-1", "tenant-1", "room-1", 1500000, entity.RentalStatusActive)
	f.addBill("bill-1", "rental-1", 8, 2026, 1500000, entity.BillKindRent, entity.BillStatusUnpaid)
	rentalUC := newRentalUC(f)

	_, err := rentalUC.End(context.Background(), "rental-1")
	require.NoError(t, err)

	billingUC := usecase.NewBillingUseCase(f.txRunner, f.bills, f.rentals, f.rooms, f.tenants, newFakeProofStore(), f.clk)
	paid, err := billingUC.MarkPaid(context.Background(), "bill-1", dto.PayBillRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err, "bills must stay payable after the rental ends")
	assert.Equal(t, entity.BillStatusPaid, paid.Status)
}

func TestEndRental_LostRaceEndsOnce(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusOccupied)
	f.addTenant("tenant-1", "Siti")
	f.addRental("rental-1", "tenant-1", "room-1", 1500000, entity.RentalStatusActive)
	uc := newRentalUC(f)

	// a competing end commits after this request read the rental as active
	winnerEnd := f.clk.Now().Add(-time.Minute)
	f.store.beforeRentalTx = func() {
		r := f.store.rentals["rental-1"]
		r.Status = entity.RentalStatusEnded
		r.EndDate = &winnerEnd
		f.store.rentals["rental-1"] = r
		room := f.store.rooms["room-1"]
		room.Status = entity.RoomStatusVacant
		f.store.rooms["room-1"] = room
	}

	_, err := uc.End(context.Background(), "rental-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got := f.store.rentals["rental-1"]
	require.NotNil(t, got.EndDate)
	assert.Equal(t, winnerEnd, *got.EndDate, "the losing end must not move the end date")
}

func TestEndRental_AlreadyEnded(t *testing.T) {
	f := newFixture()
	f.addRoom("room-1", "A1", 1500000, entity.RoomStatusVacant)
	f.addTenant("tenant-1", "Siti")
	f.addRental("rental-1", "tenant-1", "room-1", 1500000, entity.RentalStatusEnded)
	uc := newRentalUC(f)

	_, err := uc.End(context.Background(), "rental-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestEndRental_NotFound(t *testing.T) {
	f := newFixture()
	uc := newRentalUC(f)

	_, err := uc.End(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
