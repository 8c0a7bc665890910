package repository

import (
	"context"
	"time"

	"github.com/kosman/kosman-api/internal/domain/entity"
)

// RoomRepository defines the persistence port for Room. Lookups return
// (nil, nil) when the record does not exist.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetByNumber(ctx context.Context, number string) (*entity.Room, error)
	List(ctx context.Context) ([]*entity.Room, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Room, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	Update(ctx context.Context, room *entity.Room) error
	// UpdateStatus writes only the status column, stamping updated_at with
	// the caller's clock time. The occupancy rules live in the use case; this
	// is the single write path for Room.Status.
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
