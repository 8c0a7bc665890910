package dto

import "github.com/shopspring/decimal"

// UnpaidBillSummary an unpaid bill enriched with tenant and room for the
// dashboard widget.
type UnpaidBillSummary struct {
	BillID     string          `json:"bill_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	TenantName string          `json:"tenant_name"`
	RoomNumber string          `json:"room_number"`
}

// VacantRoomSummary a vacant room offered for rent.
type VacantRoomSummary struct {
	RoomID    string          `json:"room_id"`
	Number    string          `json:"number"`
	Price     decimal.Decimal `json:"price"`
	Amenities string          `json:"amenities"`
}

// DashboardResponse operator dashboard rollup, computed at call time.
type DashboardResponse struct {
	OccupiedRooms  int                   `json:"occupied_rooms"`
	VacantRooms    int                   `json:"vacant_rooms"`
	UnpaidBills    int                   `json:"unpaid_bills"`
	MonthIncome    decimal.Decimal       `json:"month_income"`
	OpenTickets    int                   `json:"open_tickets"`
	OldestUnpaid   []UnpaidBillSummary   `json:"oldest_unpaid"`
	Vacant         []VacantRoomSummary   `json:"vacant"`
	RecentActivity []TransactionResponse `json:"recent_activity"`
}
