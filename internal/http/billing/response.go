package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/billing"
)

type billResponse struct {
	ID               uuid.UUID      `json:"id"`
	RoomID           uuid.UUID      `json:"room_id"`
	RoomNumber       string         `json:"room_number"`
	TenantID         *uuid.UUID     `json:"tenant_id,omitempty"`
	Month            string         `json:"month"`
	RoomRent         int64          `json:"room_rent"`
	WaterUnits       int64          `json:"water_units"`
	WaterCost        int64          `json:"water_cost"`
	ElectricityUnits int64          `json:"electricity_units"`
	ElectricityCost  int64          `json:"electricity_cost"`
	Total            int64          `json:"total"`
	DueDate          time.Time      `json:"due_date"`
	PaidDate         *time.Time     `json:"paid_date,omitempty"`
	Status           billing.Status `json:"status"`
	ReceiptNumber    string         `json:"receipt_number"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`
}

// toResponse reports the effective status, so a pending bill past due
// reads as overdue without a stored state change.
func toResponse(rec *billing.Record, now time.Time) billResponse {
	return billResponse{
		ID:               rec.ID,
		RoomID:           rec.RoomID,
		RoomNumber:       rec.RoomNumber,
		TenantID:         rec.TenantID,
		Month:            rec.Month.Format("2006-01"),
		RoomRent:         rec.RoomRent,
		WaterUnits:       rec.WaterUnits,
		WaterCost:        rec.WaterCost,
		ElectricityUnits: rec.ElectricityUnits,
		ElectricityCost:  rec.ElectricityCost,
		Total:            rec.Total,
		DueDate:          rec.DueDate,
		PaidDate:         rec.PaidDate,
		Status:           rec.EffectiveStatus(now),
		ReceiptNumber:    rec.ReceiptNumber,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

func toResponseList(recs []*billing.Record, now time.Time) []billResponse {
	resp := make([]billResponse, len(recs))
	for i, rec := range recs {
		resp[i] = toResponse(rec, now)
	}

	return resp
}
