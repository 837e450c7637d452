package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kritchanat/dormdesk/internal/billing"
)

func TestCompute(t *testing.T) {
	rates := billing.Rates{Water: 2000, Electricity: 700, Rent: 300000}

	type testCase struct {
		name      string
		occupants int
		previous  int64
		current   int64
		want      billing.Charges
	}

	tests := []testCase{
		{
			// Two occupants, 50 meter units: 40 + 350 + 3000 baht.
			name:      "TwoOccupantsNormalDelta",
			occupants: 2,
			previous:  100,
			current:   150,
			want: billing.Charges{
				WaterUnits:       2,
				WaterCost:        4000,
				ElectricityUnits: 50,
				ElectricityCost:  35000,
				Total:            339000,
			},
		},
		{
			name:      "UnchangedMeter",
			occupants: 1,
			previous:  100,
			current:   100,
			want: billing.Charges{
				WaterUnits:       1,
				WaterCost:        2000,
				ElectricityUnits: 0,
				ElectricityCost:  0,
				Total:            302000,
			},
		},
		{
			name:      "NegativeDeltaClampedToZero",
			occupants: 1,
			previous:  200,
			current:   150,
			want: billing.Charges{
				WaterUnits:       1,
				WaterCost:        2000,
				ElectricityUnits: 0,
				ElectricityCost:  0,
				Total:            302000,
			},
		},
		{
			name:      "NoOccupants",
			occupants: 0,
			previous:  0,
			current:   10,
			want: billing.Charges{
				WaterUnits:       0,
				WaterCost:        0,
				ElectricityUnits: 10,
				ElectricityCost:  7000,
				Total:            307000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.Compute(tt.occupants, tt.previous, tt.current, rates)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	in := time.Date(2026, 3, 17, 14, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), billing.NormalizeMonth(in))
}

func TestDefaultDueDate(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), billing.DefaultDueDate(month, 5))

	// December rolls into January of the next year.
	dec := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC), billing.DefaultDueDate(dec, 5))
}

func TestReceiptNumber(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "R202603-101", billing.ReceiptNumber(month, "101"))
}

func TestRecord_EffectiveStatus(t *testing.T) {
	due := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	rec := &billing.Record{Status: billing.StatusPending, DueDate: due}

	assert.Equal(t, billing.StatusPending, rec.EffectiveStatus(due.AddDate(0, 0, -1)))
	assert.Equal(t, billing.StatusOverdue, rec.EffectiveStatus(due.AddDate(0, 0, 1)))

	rec.Status = billing.StatusPaid
	assert.Equal(t, billing.StatusPaid, rec.EffectiveStatus(due.AddDate(0, 0, 30)))
}
