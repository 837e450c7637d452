package billing

import (
	"fmt"
	"time"
)

// Rates holds the administrator-configured multipliers for one computation.
// They are passed by value so the computation never reads shared state.
// Water is satang per occupant, Electricity satang per meter unit, Rent the
// flat monthly room rent in satang.
type Rates struct {
	Water       int64
	Electricity int64
	Rent        int64
}

// Charges is the computed breakdown for a single room.
type Charges struct {
	WaterUnits       int64
	WaterCost        int64
	ElectricityUnits int64
	ElectricityCost  int64
	Total            int64
}

// Compute derives a room's monthly charges. One water unit is billed per
// current occupant; electricity units are the meter delta, clamped at zero.
func Compute(occupants int, previous, current int64, rates Rates) Charges {
	waterUnits := int64(occupants)

	electricityUnits := current - previous
	if electricityUnits < 0 {
		electricityUnits = 0
	}

	waterCost := waterUnits * rates.Water
	electricityCost := electricityUnits * rates.Electricity

	return Charges{
		WaterUnits:       waterUnits,
		WaterCost:        waterCost,
		ElectricityUnits: electricityUnits,
		ElectricityCost:  electricityCost,
		Total:            rates.Rent + waterCost + electricityCost,
	}
}

// ReadingError reports a meter reading below the room's stored reading.
type ReadingError struct {
	RoomNumber string
	Previous   int64
	Current    int64
}

func (e *ReadingError) Error() string {
	return fmt.Sprintf("room %s: meter reading %d is below previous reading %d",
		e.RoomNumber, e.Current, e.Previous)
}

// NormalizeMonth truncates a timestamp to the first day of its month in UTC.
// Billing months are stored and compared in this form.
func NormalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DefaultDueDate returns the given day of the month following the billing
// month, e.g. month 2026-03 with day 5 gives 2026-04-05.
func DefaultDueDate(month time.Time, day int) time.Time {
	m := NormalizeMonth(month)
	return m.AddDate(0, 1, day-1)
}

// ReceiptNumber builds the deterministic receipt identifier for a room's
// monthly bill, e.g. R202603-101.
func ReceiptNumber(month time.Time, roomNumber string) string {
	return fmt.Sprintf("R%s-%s", month.Format("200601"), roomNumber)
}
