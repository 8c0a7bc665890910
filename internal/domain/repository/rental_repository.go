package repository

import (
	"context"

	"github.com/kosman/kosman-api/internal/domain/entity"
)

// RentalRepository defines the persistence port for Rental.
type RentalRepository interface {
	Create(ctx context.Context, rental *entity.Rental) error
	GetByID(ctx context.Context, id string) (*entity.Rental, error)
	List(ctx context.Context) ([]*entity.Rental, error)
	ListActive(ctx context.Context) ([]*entity.Rental, error)
	// GetActiveByRoom returns the room's active rental, or (nil, nil) when the
	// room is free. Backed by a partial unique index so there is at most one.
	GetActiveByRoom(ctx context.Context, roomID string) (*entity.Rental, error)
	GetActiveByTenant(ctx context.Context, tenantID string) (*entity.Rental, error)
	// End writes the ended state only while the stored rental is still
	// active, and returns domain.ErrInvalidState otherwise, so concurrent
	// ends collapse to one transition.
	End(ctx context.Context, rental *entity.Rental) error
}
