package announcement

import (
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/announcement"
)

type announcementResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Published bool       `json:"published"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(a *announcement.Announcement) announcementResponse {
	return announcementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Published: a.Published,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toResponseList(announcements []*announcement.Announcement) []announcementResponse {
	resp := make([]announcementResponse, len(announcements))
	for i, a := range announcements {
		resp[i] = toResponse(a)
	}

	return resp
}
