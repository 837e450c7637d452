package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/tenant"
)

type tenantResponse struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Address          string     `json:"address,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	RoomID           *uuid.UUID `json:"room_id,omitempty"`
	RoomNumber       string     `json:"room_number,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func toResponse(t *tenant.Tenant) tenantResponse {
	return tenantResponse{
		ID:               t.ID,
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Email:            t.Email,
		Phone:            t.Phone,
		Address:          t.Address,
		EmergencyContact: t.EmergencyContact,
		RoomID:           t.RoomID,
		RoomNumber:       t.RoomNumber,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toResponseList(tenants []*tenant.Tenant) []tenantResponse {
	resp := make([]tenantResponse, len(tenants))
	for i, t := range tenants {
		resp[i] = toResponse(t)
	}

	return resp
}
