package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo RoomRepository implementation (usable with pool or tx).
type RoomRepo struct {
	q Querier
}

// NewRoomRepository builds the adapter. Pass a pool or a tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

const roomColumns = `id, number, price, amenities, status, created_at, updated_at`

// Create persists a new room. A duplicate number maps to domain.ErrConflict.
func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.Number, room.Price, room.Amenities, room.Status,
		room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetByID fetches a room by id, (nil, nil) when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

// GetByNumber fetches a room by its human-assigned number, (nil, nil) when
// absent.
func (r *RoomRepo) GetByNumber(ctx context.Context, number string) (*entity.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE number = $1`, number)
}

func (r *RoomRepo) getOne(ctx context.Context, query string, arg any) (*entity.Room, error) {
	var room entity.Room
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&room.ID, &room.Number, &room.Price, &room.Amenities, &room.Status,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// List returns all rooms ordered by number.
func (r *RoomRepo) List(ctx context.Context) ([]*entity.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY number`)
}

// ListByStatus returns the rooms in one occupancy state, ordered by number.
func (r *RoomRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE status = $1 ORDER BY number`, status)
}

func (r *RoomRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Room, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(
			&room.ID, &room.Number, &room.Price, &room.Amenities, &room.Status,
			&room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, &room)
	}
	return list, rows.Err()
}

// CountByStatus counts rooms in one occupancy state.
func (r *RoomRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return n, nil
}

// Update writes all mutable fields.
func (r *RoomRepo) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms SET number = $2, price = $3, amenities = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.Number, room.Price, room.Amenities, room.Status, room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// UpdateStatus writes only the occupancy status.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE rooms SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	return nil
}

// Delete removes a room by id.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
