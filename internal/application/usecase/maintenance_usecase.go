package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

// stateRank orders ticket states so transitions only move forward
// (in_progress may be skipped).
var stateRank = map[string]int{
	entity.MaintenanceStatusOpen:       0,
	entity.MaintenanceStatusInProgress: 1,
	entity.MaintenanceStatusDone:       2,
}

// MaintenanceUseCase tracks repair tickets. Completing a ticket with a
// nonzero cost appends exactly one expense ledger entry; repeating the done
// update never duplicates it.
type MaintenanceUseCase struct {
	txRunner TxRunner
	tickets  repository.MaintenanceRepository
	rooms    repository.RoomRepository
	clk      clock.Clock
}

// NewMaintenanceUseCase builds the use case.
func NewMaintenanceUseCase(txRunner TxRunner, tickets repository.MaintenanceRepository, rooms repository.RoomRepository, clk clock.Clock) *MaintenanceUseCase {
	return &MaintenanceUseCase{txRunner: txRunner, tickets: tickets, rooms: rooms, clk: clk}
}

// Create opens a ticket. When a room id is given the room must exist, and its
// number becomes the location if none was provided.
func (uc *MaintenanceUseCase) Create(ctx context.Context, in dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	if in.Description == "" {
		return nil, domain.ErrValidation
	}
	location := in.Location
	if in.RoomID != "" {
		room, err := uc.rooms.GetByID(ctx, in.RoomID)
		if err != nil {
			return nil, err
		}
		if room == nil {
			return nil, domain.ErrNotFound
		}
		if location == "" {
			location = fmt.Sprintf("room %s", room.Number)
		}
	}
	if location == "" {
		return nil, domain.ErrValidation
	}
	now := uc.clk.Now()
	ticket := &entity.Maintenance{
		ID:          uuid.New().String(),
		Location:    location,
		RoomID:      in.RoomID,
		Description: in.Description,
		Assignee:    in.Assignee,
		Status:      entity.MaintenanceStatusOpen,
		Cost:        decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return toMaintenanceResponse(ticket), nil
}

// GetByID fetches one ticket.
func (uc *MaintenanceUseCase) GetByID(ctx context.Context, id string) (*dto.MaintenanceResponse, error) {
	ticket, err := uc.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	return toMaintenanceResponse(ticket), nil
}

// List returns all tickets.
func (uc *MaintenanceUseCase) List(ctx context.Context) ([]*dto.MaintenanceResponse, error) {
	tickets, err := uc.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaintenanceResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toMaintenanceResponse(t))
	}
	return out, nil
}

// Update applies a partial update. A transition into done with cost > 0
// appends the expense entry and the ticket write in one transaction; the
// ExpenseLogged flag keeps a repeated done update from appending twice.
func (uc *MaintenanceUseCase) Update(ctx context.Context, id string, in dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	ticket, err := uc.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	if in.Assignee != nil {
		ticket.Assignee = *in.Assignee
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrValidation
		}
		ticket.Cost = *in.Cost
	}
	if in.Status != nil {
		rank, ok := stateRank[*in.Status]
		if !ok {
			return nil, domain.ErrValidation
		}
		if rank < stateRank[ticket.Status] {
			return nil, domain.ErrInvalidState
		}
		ticket.Status = *in.Status
	}
	ticket.UpdatedAt = uc.clk.Now()

	logExpense := ticket.Status == entity.MaintenanceStatusDone &&
		ticket.Cost.GreaterThan(decimal.Zero) &&
		!ticket.ExpenseLogged
	if !logExpense {
		if err := uc.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}
		return toMaintenanceResponse(ticket), nil
	}

	ticket.ExpenseLogged = true
	err = uc.txRunner.RunMaintenance(ctx, func(
		tickets repository.MaintenanceRepository,
		ledger repository.TransactionRepository,
	) error {
		// LogExpense flips the flag conditionally, so two done updates
		// racing on the same ticket append one expense, not two.
		if err := tickets.LogExpense(ctx, ticket); err != nil {
			return err
		}
		return ledger.Create(ctx, &entity.Transaction{
			ID:        uuid.New().String(),
			Kind:      entity.TransactionExpense,
			Amount:    ticket.Cost,
			Source:    fmt.Sprintf("Maintenance: %s", ticket.Location),
			Category:  entity.CategoryMaintenance,
			Timestamp: ticket.UpdatedAt,
		})
	})
	if errors.Is(err, domain.ErrInvalidState) {
		// a concurrent done update logged the expense first; apply the
		// remaining field changes like any repeated done update
		if err := uc.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}
		return toMaintenanceResponse(ticket), nil
	}
	if err != nil {
		return nil, err
	}
	return toMaintenanceResponse(ticket), nil
}

func toMaintenanceResponse(m *entity.Maintenance) *dto.MaintenanceResponse {
	return &dto.MaintenanceResponse{
		ID:          m.ID,
		Location:    m.Location,
		RoomID:      m.RoomID,
		Description: m.Description,
		Assignee:    m.Assignee,
		Status:      m.Status,
		Cost:        m.Cost,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
