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

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo MaintenanceRepository implementation.
type MaintenanceRepo struct {
	q Querier
}

func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

const maintenanceColumns = `id, location, room_id, description, assignee, status, cost, expense_logged, created_at, updated_at`

// Create persists a new ticket.
func (r *MaintenanceRepo) Create(ctx context.Context, ticket *entity.Maintenance) error {
	query := `
		INSERT INTO maintenance (` + maintenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		ticket.ID, ticket.Location, ticket.RoomID, ticket.Description, ticket.Assignee,
		ticket.Status, ticket.Cost, ticket.ExpenseLogged, ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert maintenance ticket: %w", err)
	}
	return nil
}

// GetByID fetches a ticket by id, (nil, nil) when absent.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*entity.Maintenance, error) {
	var ticket entity.Maintenance
	err := r.q.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenance WHERE id = $1`, id).Scan(
		&ticket.ID, &ticket.Location, &ticket.RoomID, &ticket.Description, &ticket.Assignee,
		&ticket.Status, &ticket.Cost, &ticket.ExpenseLogged, &ticket.CreatedAt, &ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance ticket: %w", err)
	}
	return &ticket, nil
}

// List returns all tickets, newest first.
func (r *MaintenanceRepo) List(ctx context.Context) ([]*entity.Maintenance, error) {
	rows, err := r.q.Query(ctx, `SELECT `+maintenanceColumns+` FROM maintenance ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list maintenance tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Maintenance
	for rows.Next() {
		var ticket entity.Maintenance
		if err := rows.Scan(
			&ticket.ID, &ticket.Location, &ticket.RoomID, &ticket.Description, &ticket.Assignee,
			&ticket.Status, &ticket.Cost, &ticket.ExpenseLogged, &ticket.CreatedAt, &ticket.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan maintenance ticket: %w", err)
		}
		list = append(list, &ticket)
	}
	return list, rows.Err()
}

// CountNotDone counts tickets still open or in progress.
func (r *MaintenanceRepo) CountNotDone(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance WHERE status <> 'done'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count maintenance tickets: %w", err)
	}
	return count, nil
}

// Update writes the mutable ticket fields.
func (r *MaintenanceRepo) Update(ctx context.Context, ticket *entity.Maintenance) error {
	query := `
		UPDATE maintenance SET location = $2, description = $3, assignee = $4,
			status = $5, cost = $6, expense_logged = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		ticket.ID, ticket.Location, ticket.Description, ticket.Assignee,
		ticket.Status, ticket.Cost, ticket.ExpenseLogged, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance ticket: %w", err)
	}
	return nil
}

// LogExpense writes the ticket and flips expense_logged in one statement
// guarded on the flag, so racing done updates append at most one expense.
func (r *MaintenanceRepo) LogExpense(ctx context.Context, ticket *entity.Maintenance) error {
	query := `
		UPDATE maintenance SET location = $2, description = $3, assignee = $4,
			status = $5, cost = $6, expense_logged = TRUE, updated_at = $7
		WHERE id = $1 AND expense_logged = FALSE`
	tag, err := r.q.Exec(ctx, query,
		ticket.ID, ticket.Location, ticket.Description, ticket.Assignee,
		ticket.Status, ticket.Cost, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("log maintenance expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}
