package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

// RentalUseCase manages the rental lifecycle: opening an agreement occupies
// the room and creates the first period's rent bill; ending it vacates the
// room. Each operation runs as one store transaction.
type RentalUseCase struct {
	txRunner TxRunner
	rentals  repository.RentalRepository
	rooms    repository.RoomRepository
	tenants  repository.TenantRepository
	clk      clock.Clock
}

// NewRentalUseCase builds the use case.
func NewRentalUseCase(txRunner TxRunner, rentals repository.RentalRepository, rooms repository.RoomRepository, tenants repository.TenantRepository, clk clock.Clock) *RentalUseCase {
	return &RentalUseCase{txRunner: txRunner, rentals: rentals, rooms: rooms, tenants: tenants, clk: clk}
}

// Open starts a rental on a vacant room, for an existing tenant or one
// created inline. The first rent bill covers the start date's month; if that
// period is somehow already billed the bill step is skipped, not failed.
func (uc *RentalUseCase) Open(ctx context.Context, in dto.OpenRentalRequest) (*dto.RentalResponse, error) {
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrValidation
	}
	if (in.TenantID == "") == (in.Tenant == nil) {
		// exactly one of tenant_id / inline tenant
		return nil, domain.ErrValidation
	}

	room, err := uc.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	active, err := uc.rentals.GetActiveByRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrConflict
	}

	tenantID := in.TenantID
	if tenantID != "" {
		tenant, err := uc.tenants.GetByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, domain.ErrNotFound
		}
	} else if in.Tenant.Name == "" || in.Tenant.Phone == "" || in.Tenant.IDNumber == "" {
		return nil, domain.ErrValidation
	}

	now := uc.clk.Now()
	start := now
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}

	rental := &entity.Rental{
		ID:        uuid.New().String(),
		RoomID:    in.RoomID,
		StartDate: start,
		Price:     in.Price,
		Status:    entity.RentalStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.RunRental(ctx, func(
		rentals repository.RentalRepository,
		rooms repository.RoomRepository,
		tenants repository.TenantRepository,
		bills repository.BillRepository,
	) error {
		if tenantID == "" {
			tenant := &entity.Tenant{
				ID:        uuid.New().String(),
				Name:      in.Tenant.Name,
				Phone:     in.Tenant.Phone,
				Email:     in.Tenant.Email,
				IDNumber:  in.Tenant.IDNumber,
				Address:   in.Tenant.Address,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tenants.Create(ctx, tenant); err != nil {
				return err
			}
			tenantID = tenant.ID
		}
		rental.TenantID = tenantID

		// The partial unique index on active rentals turns a concurrent open
		// on the same room into ErrConflict here.
		if err := rentals.Create(ctx, rental); err != nil {
			return err
		}
		if err := setRoomStatus(ctx, rooms, rental.RoomID, entity.RoomStatusOccupied, now); err != nil {
			return err
		}

		bill := &entity.Bill{
			ID:        uuid.New().String(),
			RentalID:  rental.ID,
			Month:     int(start.Month()),
			Year:      start.Year(),
			Amount:    in.Price,
			Kind:      entity.BillKindRent,
			Status:    entity.BillStatusUnpaid,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := bills.Create(ctx, bill); err != nil && !errors.Is(err, domain.ErrConflict) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRentalResponse(rental), nil
}

// End closes an active rental and vacates the room. Outstanding unpaid bills
// stay payable after the rental ends.
func (uc *RentalUseCase) End(ctx context.Context, id string) (*dto.RentalResponse, error) {
	rental, err := uc.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	if rental.Status != entity.RentalStatusActive {
		return nil, domain.ErrInvalidState
	}

	now := uc.clk.Now()
	rental.Status = entity.RentalStatusEnded
	rental.EndDate = &now
	rental.UpdatedAt = now

	err = uc.txRunner.RunRental(ctx, func(
		rentals repository.RentalRepository,
		rooms repository.RoomRepository,
		_ repository.TenantRepository,
		_ repository.BillRepository,
	) error {
		// End is conditional on the stored status, so a rental ended by a
		// concurrent request comes back ErrInvalidState instead of
		// transitioning twice.
		if err := rentals.End(ctx, rental); err != nil {
			return err
		}
		return setRoomStatus(ctx, rooms, rental.RoomID, entity.RoomStatusVacant, now)
	})
	if err != nil {
		return nil, err
	}
	return toRentalResponse(rental), nil
}

// GetByID fetches one rental.
func (uc *RentalUseCase) GetByID(ctx context.Context, id string) (*dto.RentalResponse, error) {
	rental, err := uc.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	return toRentalResponse(rental), nil
}

// List returns all rentals.
func (uc *RentalUseCase) List(ctx context.Context) ([]*dto.RentalResponse, error) {
	rentals, err := uc.rentals.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, toRentalResponse(r))
	}
	return out, nil
}

func toRentalResponse(r *entity.Rental) *dto.RentalResponse {
	return &dto.RentalResponse{
		ID:        r.ID,
		TenantID:  r.TenantID,
		RoomID:    r.RoomID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Price:     r.Price,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
