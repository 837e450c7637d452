package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("staff member not found")

// Staff is an employment record. Salary is in satang.
type Staff struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Position  string
	Phone     string
	Email     string
	Salary    int64
	HiredAt   time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}
