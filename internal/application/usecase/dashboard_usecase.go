package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

const (
	dashboardUnpaidLimit   = 10 // bills in the oldest-unpaid widget
	dashboardActivityLimit = 10 // ledger entries in the recent-activity widget
)

// DashboardUseCase aggregates read-only counts and short lists for the
// dashboard. Enrichment joins skip items whose referenced records are gone
// instead of failing the whole rollup.
type DashboardUseCase struct {
	rooms   repository.RoomRepository
	bills   repository.BillRepository
	rentals repository.RentalRepository
	tenants repository.TenantRepository
	tickets repository.MaintenanceRepository
	ledger  repository.TransactionRepository
	clk     clock.Clock
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	rooms repository.RoomRepository,
	bills repository.BillRepository,
	rentals repository.RentalRepository,
	tenants repository.TenantRepository,
	tickets repository.MaintenanceRepository,
	ledger repository.TransactionRepository,
	clk clock.Clock,
) *DashboardUseCase {
	return &DashboardUseCase{
		rooms:   rooms,
		bills:   bills,
		rentals: rentals,
		tenants: tenants,
		tickets: tickets,
		ledger:  ledger,
		clk:     clk,
	}
}

// GetSummary builds the dashboard. The four counters and the month income
// run as parallel queries; the two widget lists follow sequentially.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.clk.Now()
	monthFrom, monthTo := MonthBounds(int(now.Month()), now.Year())

	type countResult struct {
		n   int
		err error
	}
	type incomeResult struct {
		total decimal.Decimal
		err   error
	}

	occupiedCh := make(chan countResult, 1)
	vacantCh := make(chan countResult, 1)
	unpaidCh := make(chan countResult, 1)
	ticketsCh := make(chan countResult, 1)
	incomeCh := make(chan incomeResult, 1)

	go func() {
		n, err := uc.rooms.CountByStatus(ctx, entity.RoomStatusOccupied)
		occupiedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.rooms.CountByStatus(ctx, entity.RoomStatusVacant)
		vacantCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.bills.CountByStatus(ctx, entity.BillStatusUnpaid)
		unpaidCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.tickets.CountNotDone(ctx)
		ticketsCh <- countResult{n, err}
	}()
	go func() {
		total, err := uc.ledger.SumByKindBetween(ctx, entity.TransactionIncome, monthFrom, monthTo)
		incomeCh <- incomeResult{total, err}
	}()

	occupied := <-occupiedCh
	vacant := <-vacantCh
	unpaid := <-unpaidCh
	tickets := <-ticketsCh
	income := <-incomeCh

	if occupied.err != nil {
		return nil, fmt.Errorf("dashboard: occupied rooms: %w", occupied.err)
	}
	if vacant.err != nil {
		return nil, fmt.Errorf("dashboard: vacant rooms: %w", vacant.err)
	}
	if unpaid.err != nil {
		return nil, fmt.Errorf("dashboard: unpaid bills: %w", unpaid.err)
	}
	if tickets.err != nil {
		return nil, fmt.Errorf("dashboard: open tickets: %w", tickets.err)
	}
	if income.err != nil {
		return nil, fmt.Errorf("dashboard: month income: %w", income.err)
	}

	oldestUnpaid, err := uc.oldestUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: oldest unpaid: %w", err)
	}
	vacantList, err := uc.vacantRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: vacant list: %w", err)
	}
	activity, err := uc.recentActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: recent activity: %w", err)
	}

	return &dto.DashboardResponse{
		OccupiedRooms:  occupied.n,
		VacantRooms:    vacant.n,
		UnpaidBills:    unpaid.n,
		MonthIncome:    income.total,
		OpenTickets:    tickets.n,
		OldestUnpaid:   oldestUnpaid,
		Vacant:         vacantList,
		RecentActivity: activity,
	}, nil
}

// recentActivity lists the newest ledger entries, newest first. Settlements
// and maintenance expenses land here through their ledger appends.
func (uc *DashboardUseCase) recentActivity(ctx context.Context) ([]dto.TransactionResponse, error) {
	txs, err := uc.ledger.ListRecent(ctx, dashboardActivityLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *toTransactionResponse(tx))
	}
	return out, nil
}

// oldestUnpaid enriches the oldest unpaid bills with tenant name and room
// number. A bill whose rental, tenant or room is missing is skipped.
func (uc *DashboardUseCase) oldestUnpaid(ctx context.Context) ([]dto.UnpaidBillSummary, error) {
	bills, err := uc.bills.ListUnpaidOldest(ctx, dashboardUnpaidLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnpaidBillSummary, 0, len(bills))
	for _, bill := range bills {
		rental, err := uc.rentals.GetByID(ctx, bill.RentalID)
		if err != nil {
			return nil, err
		}
		if rental == nil {
			continue
		}
		tenant, err := uc.tenants.GetByID(ctx, rental.TenantID)
		if err != nil {
			return nil, err
		}
		room, err := uc.rooms.GetByID(ctx, rental.RoomID)
		if err != nil {
			return nil, err
		}
		if tenant == nil || room == nil {
			continue
		}
		out = append(out, dto.UnpaidBillSummary{
			BillID:     bill.ID,
			Month:      bill.Month,
			Year:       bill.Year,
			Amount:     bill.Amount,
			TenantName: tenant.Name,
			RoomNumber: room.Number,
		})
	}
	return out, nil
}

func (uc *DashboardUseCase) vacantRooms(ctx context.Context) ([]dto.VacantRoomSummary, error) {
	rooms, err := uc.rooms.ListByStatus(ctx, entity.RoomStatusVacant)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VacantRoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, dto.VacantRoomSummary{
			RoomID:    room.ID,
			Number:    room.Number,
			Price:     room.Price,
			Amenities: room.Amenities,
		})
	}
	return out, nil
}
