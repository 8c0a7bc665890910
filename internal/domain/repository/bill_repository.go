package repository

import (
	"context"

	"github.com/kosman/kosman-api/internal/domain/entity"
)

// BillRepository defines the persistence port for Bill.
type BillRepository interface {
	// Create returns domain.ErrConflict when a bill already exists for the
	// same (rental, month, year, kind).
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	// GetByPeriod returns (nil, nil) when the period has no bill of that kind.
	GetByPeriod(ctx context.Context, rentalID string, month, year int, kind string) (*entity.Bill, error)
	List(ctx context.Context) ([]*entity.Bill, error)
	ListByRental(ctx context.Context, rentalID string) ([]*entity.Bill, error)
	ListUnpaidOldest(ctx context.Context, limit int) ([]*entity.Bill, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	Update(ctx context.Context, bill *entity.Bill) error
	// MarkPaid writes the settlement fields only while the stored bill is
	// still unpaid, and returns domain.ErrInvalidState otherwise. The check
	// and the write are one statement, so two settlements racing on the same
	// bill cannot both succeed.
	MarkPaid(ctx context.Context, bill *entity.Bill) error
}
