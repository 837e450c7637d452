package settings

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("system settings not configured")

// Settings is the single administrator-maintained configuration record.
// Monetary values are in satang. DepositRate doubles as the default monthly
// rent, matching how the original system used it.
type Settings struct {
	WaterRate       int64
	ElectricityRate int64
	DepositRate     int64
	LateFee         int64
	FloorCount      int
	UpdatedAt       *time.Time
	UpdatedBy       *uuid.UUID
}
