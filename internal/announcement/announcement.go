package announcement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("announcement not found")

type Announcement struct {
	ID        uuid.UUID
	Title     string
	Body      string
	Published bool
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
