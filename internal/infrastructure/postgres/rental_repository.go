package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

// RentalRepo RentalRepository implementation (usable with pool or tx).
type RentalRepo struct {
	q Querier
}

// NewRentalRepository builds the adapter. Pass a pool or a tx (Querier).
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

const rentalColumns = `id, tenant_id, room_id, start_date, end_date, price, status, created_at, updated_at`

// Create persists a new rental. The partial unique index on active rentals
// maps a second active rental on the same room to domain.ErrConflict.
func (r *RentalRepo) Create(ctx context.Context, rental *entity.Rental) error {
	query := `
		INSERT INTO rentals (` + rentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rental.ID, rental.TenantID, rental.RoomID, rental.StartDate, rental.EndDate,
		rental.Price, rental.Status, rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID fetches a rental by id, (nil, nil) when absent.
func (r *RentalRepo) GetByID(ctx context.Context, id string) (*entity.Rental, error) {
	return r.getOne(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
}

// GetActiveByRoom fetches the room's active rental, (nil, nil) when the room
// is free.
func (r *RentalRepo) GetActiveByRoom(ctx context.Context, roomID string) (*entity.Rental, error) {
	return r.getOne(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE room_id = $1 AND status = 'active'`, roomID)
}

// GetActiveByTenant fetches one active rental held by the tenant, (nil, nil)
// when there is none.
func (r *RentalRepo) GetActiveByTenant(ctx context.Context, tenantID string) (*entity.Rental, error) {
	return r.getOne(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE tenant_id = $1 AND status = 'active' LIMIT 1`, tenantID)
}

func (r *RentalRepo) getOne(ctx context.Context, query string, arg any) (*entity.Rental, error) {
	var rental entity.Rental
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&rental.ID, &rental.TenantID, &rental.RoomID, &rental.StartDate, &rental.EndDate,
		&rental.Price, &rental.Status, &rental.CreatedAt, &rental.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental: %w", err)
	}
	return &rental, nil
}

// List returns all rentals, newest first.
func (r *RentalRepo) List(ctx context.Context) ([]*entity.Rental, error) {
	return r.list(ctx, `SELECT `+rentalColumns+` FROM rentals ORDER BY created_at DESC`)
}

// ListActive returns the active rentals.
func (r *RentalRepo) ListActive(ctx context.Context) ([]*entity.Rental, error) {
	return r.list(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE status = 'active' ORDER BY created_at`)
}

func (r *RentalRepo) list(ctx context.Context, query string) ([]*entity.Rental, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rental
	for rows.Next() {
		var rental entity.Rental
		if err := rows.Scan(
			&rental.ID, &rental.TenantID, &rental.RoomID, &rental.StartDate, &rental.EndDate,
			&rental.Price, &rental.Status, &rental.CreatedAt, &rental.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		list = append(list, &rental)
	}
	return list, rows.Err()
}

// End writes the ended state with a status predicate, so a rental already
// ended by a concurrent request matches zero rows instead of transitioning
// twice.
func (r *RentalRepo) End(ctx context.Context, rental *entity.Rental) error {
	query := `
		UPDATE rentals SET status = $2, end_date = $3, updated_at = $4
		WHERE id = $1 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query,
		rental.ID, rental.Status, rental.EndDate, rental.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("end rental: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}
