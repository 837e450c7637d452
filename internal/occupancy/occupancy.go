package occupancy

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoCurrentStay = errors.New("tenant has no current stay")

// Record links a tenant to a room for an interval. IsCurrent is true for at
// most one record per tenant; historical stays keep their check-out date.
type Record struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	RoomID       uuid.UUID
	CheckInDate  time.Time
	CheckOutDate *time.Time
	IsCurrent    bool
	CreatedAt    time.Time
}
