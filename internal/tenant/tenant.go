package tenant

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("tenant not found")
	ErrRoomFull         = errors.New("room is at capacity")
	ErrRoomUnavailable  = errors.New("room is under maintenance")
	ErrAlreadyCheckedIn = errors.New("tenant already has a current stay")
)

// Tenant represents a renter. RoomID/RoomNumber reflect the current stay
// when loaded via the occupancy join; they are not stored on the tenant row.
type Tenant struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Address          string
	EmergencyContact string
	RoomID           *uuid.UUID
	RoomNumber       string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

type CreateParams struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Address          string
	EmergencyContact string
}

// RosterEntry is one row of an imported tenant roster: the tenant's details
// plus the room they move into.
type RosterEntry struct {
	Tenant     CreateParams
	RoomNumber string
}

// RosterFailure records why one roster row was not imported.
type RosterFailure struct {
	Line       int
	RoomNumber string
	Err        error
}

func (f RosterFailure) Message() string {
	return fmt.Sprintf("line %d (room %s): %v", f.Line, f.RoomNumber, f.Err)
}

// RosterResult is the aggregate outcome of a roster import; rows are
// processed independently, mirroring the billing run's best-effort batch.
type RosterResult struct {
	Created  []*Tenant
	Failures []RosterFailure
}
