package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the persisted lifecycle state of a billing record.
// Overdue is never stored; it is derived at read time via EffectiveStatus.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

var (
	ErrNotFound       = errors.New("billing record not found")
	ErrDuplicateMonth = errors.New("billing record already exists for this room and month")
	ErrAlreadyPaid    = errors.New("billing record is already paid")
)

// Record represents one room's utility and rent charges for a calendar month.
// Amounts are in satang; Month is normalized to the first day of the month.
type Record struct {
	ID               uuid.UUID
	RoomID           uuid.UUID
	RoomNumber       string // Loaded via JOIN
	TenantID         *uuid.UUID
	Month            time.Time
	RoomRent         int64
	WaterUnits       int64
	WaterCost        int64
	ElectricityUnits int64
	ElectricityCost  int64
	Total            int64
	DueDate          time.Time
	PaidDate         *time.Time
	Status           Status
	ReceiptNumber    string
	EditedBy         *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// EffectiveStatus derives the display status: a pending record past its due
// date reads as overdue. The stored status is never mutated by time passing.
func (r *Record) EffectiveStatus(now time.Time) Status {
	if r.Status == StatusPending && now.After(r.DueDate) {
		return StatusOverdue
	}

	return r.Status
}

// RoomOccupancy is a per-room snapshot used as input to a monthly run:
// the room, its current occupant count, the last finalized meter reading and
// the room's rent override when one is set.
type RoomOccupancy struct {
	RoomID          uuid.UUID
	RoomNumber      string
	OccupantCount   int
	PreviousReading int64
	MonthlyRent     *int64
	TenantID        *uuid.UUID
}
