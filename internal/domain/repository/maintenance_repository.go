package repository

import (
	"context"

	"github.com/kosman/kosman-api/internal/domain/entity"
)

// MaintenanceRepository defines the persistence port for Maintenance tickets.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *entity.Maintenance) error
	GetByID(ctx context.Context, id string) (*entity.Maintenance, error)
	List(ctx context.Context) ([]*entity.Maintenance, error)
	CountNotDone(ctx context.Context) (int, error)
	Update(ctx context.Context, m *entity.Maintenance) error
	// LogExpense writes the ticket only while its expense has not been
	// logged yet, flipping the flag in the same statement; returns
	// domain.ErrInvalidState when another update already logged it.
	LogExpense(ctx context.Context, m *entity.Maintenance) error
}
