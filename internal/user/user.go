package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email is already registered")
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleTenant Role = "tenant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleTenant:
		return true
	}

	return false
}

// User is a login account. TenantID and StaffID link the account to the
// person it belongs to; at most one of them is set.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	TenantID     *uuid.UUID
	StaffID      *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
