package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Maintenance ticket states. open -> in_progress -> done, where in_progress
// may be skipped.
const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusDone       = "done"
)

// Maintenance is a tracked repair or service task, optionally tied to a room.
// Completing it with a nonzero cost appends exactly one expense ledger entry;
// ExpenseLogged guards against duplicates on repeated done updates.
type Maintenance struct {
	ID            string
	Location      string // free text; room number, "kitchen", etc.
	RoomID        string // optional
	Description   string
	Assignee      string // optional
	Status        string
	Cost          decimal.Decimal
	ExpenseLogged bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
