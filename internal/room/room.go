package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents a room's occupancy state.
type Status string

const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrDuplicateNumber = errors.New("room number already exists")
)

// Room represents a rentable room. LatestMeterReading is the cumulative
// electricity counter as of the last finalized bill; only the billing paths
// advance it. MonthlyRent overrides the settings default when set.
type Room struct {
	ID                 uuid.UUID
	RoomNumber         string
	Floor              int
	Capacity           int
	RoomType           string
	Status             Status
	LatestMeterReading int64
	MonthlyRent        *int64
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
