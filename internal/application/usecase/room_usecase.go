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

// RoomUseCase owns the room records and the occupancy status field. Status is
// written only through SetOccupied/SetVacant (rental lifecycle, maintenance)
// or an explicit operator edit via Update.
type RoomUseCase struct {
	rooms   repository.RoomRepository
	rentals repository.RentalRepository
	clk     clock.Clock
}

// NewRoomUseCase builds the use case.
func NewRoomUseCase(rooms repository.RoomRepository, rentals repository.RentalRepository, clk clock.Clock) *RoomUseCase {
	return &RoomUseCase{rooms: rooms, rentals: rentals, clk: clk}
}

// Create registers a new room. The number must be unique.
func (uc *RoomUseCase) Create(ctx context.Context, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if in.Number == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrValidation
	}
	existing, err := uc.rooms.GetByNumber(ctx, in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	now := uc.clk.Now()
	room := &entity.Room{
		ID:        uuid.New().String(),
		Number:    in.Number,
		Price:     in.Price,
		Amenities: in.Amenities,
		Status:    entity.RoomStatusVacant,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// GetByID fetches one room.
func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	return toRoomResponse(room), nil
}

// List returns all rooms.
func (uc *RoomUseCase) List(ctx context.Context) ([]*dto.RoomResponse, error) {
	rooms, err := uc.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return out, nil
}

// Update applies a partial update; nil fields stay unchanged. A status edit
// here is a direct operator override of the occupancy field.
func (uc *RoomUseCase) Update(ctx context.Context, id string, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	if in.Number != nil && *in.Number != room.Number {
		other, err := uc.rooms.GetByNumber(ctx, *in.Number)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrConflict
		}
		room.Number = *in.Number
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrValidation
		}
		room.Price = *in.Price
	}
	if in.Amenities != nil {
		room.Amenities = *in.Amenities
	}
	if in.Status != nil {
		if *in.Status != entity.RoomStatusVacant && *in.Status != entity.RoomStatusOccupied {
			return nil, domain.ErrValidation
		}
		room.Status = *in.Status
	}
	room.UpdatedAt = uc.clk.Now()
	if err := uc.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// Delete removes a room. Blocked while an active rental references it.
func (uc *RoomUseCase) Delete(ctx context.Context, id string) error {
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrNotFound
	}
	active, err := uc.rentals.GetActiveByRoom(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return domain.ErrConflict
	}
	return uc.rooms.Delete(ctx, id)
}

// SetOccupied marks the room occupied. Idempotent.
func (uc *RoomUseCase) SetOccupied(ctx context.Context, id string) error {
	return setRoomStatus(ctx, uc.rooms, id, entity.RoomStatusOccupied, uc.clk.Now())
}

// SetVacant marks the room vacant. Idempotent.
func (uc *RoomUseCase) SetVacant(ctx context.Context, id string) error {
	return setRoomStatus(ctx, uc.rooms, id, entity.RoomStatusVacant, uc.clk.Now())
}

// setRoomStatus is the single occupancy write path, shared with the rental
// lifecycle so the same rule applies inside its transaction.
func setRoomStatus(ctx context.Context, rooms repository.RoomRepository, id, status string, at time.Time) error {
	room, err := rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrNotFound
	}
	if room.Status == status {
		return nil
	}
	return rooms.UpdateStatus(ctx, id, status, at)
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:        r.ID,
		Number:    r.Number,
		Price:     r.Price,
		Amenities: r.Amenities,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
