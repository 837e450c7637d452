package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/staff"
)

type staffResponse struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Position  string     `json:"position,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Salary    int64      `json:"salary"`
	HiredAt   time.Time  `json:"hired_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(m *staff.Staff) staffResponse {
	return staffResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Position:  m.Position,
		Phone:     m.Phone,
		Email:     m.Email,
		Salary:    m.Salary,
		HiredAt:   m.HiredAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toResponseList(members []*staff.Staff) []staffResponse {
	resp := make([]staffResponse, len(members))
	for i, m := range members {
		resp[i] = toResponse(m)
	}

	return resp
}
