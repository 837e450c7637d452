package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/occupancy"
	"github.com/kritchanat/dormdesk/internal/room"
)

type Repository interface {
	CreateTenant(ctx context.Context, t *Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error)
	ListTenants(ctx context.Context, filter ListFilter) ([]*Tenant, error)
	UpdateTenant(ctx context.Context, t *Tenant) error
	DeleteTenant(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo      Repository
	occupants *occupancy.Service
	rooms     *room.Service
}

func NewService(repo Repository, occupants *occupancy.Service, rooms *room.Service) *Service {
	return &Service{repo: repo, occupants: occupants, rooms: rooms}
}

type ListFilter struct {
	RoomID *uuid.UUID
	Search string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Tenant, error) {
	t := &Tenant{
		FirstName:        params.FirstName,
		LastName:         params.LastName,
		Email:            params.Email,
		Phone:            params.Phone,
		Address:          params.Address,
		EmergencyContact: params.EmergencyContact,
	}
	if err := s.repo.CreateTenant(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.repo.GetTenant(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Tenant, error) {
	return s.repo.ListTenants(ctx, filter)
}

func (s *Service) Update(ctx context.Context, t *Tenant) error {
	return s.repo.UpdateTenant(ctx, t)
}

// CheckIn opens a stay for the tenant in the room and recomputes the room's
// status. A tenant can hold only one current stay, and a room never takes
// more occupants than its capacity.
func (s *Service) CheckIn(ctx context.Context, tenantID, roomID uuid.UUID, checkIn time.Time) error {
	r, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}

	if r.Status == room.StatusMaintenance {
		return ErrRoomUnavailable
	}

	if _, err := s.occupants.Current(ctx, tenantID); err == nil {
		return ErrAlreadyCheckedIn
	} else if !errors.Is(err, occupancy.ErrNoCurrentStay) {
		return err
	}

	count, err := s.occupants.CountCurrent(ctx, roomID)
	if err != nil {
		return err
	}

	if count >= r.Capacity {
		return ErrRoomFull
	}

	if _, err := s.occupants.Begin(ctx, tenantID, roomID, checkIn); err != nil {
		return err
	}

	return s.rooms.SyncOccupancyStatus(ctx, roomID, count+1)
}

// CreateAndCheckIn is the combined onboarding flow: new tenant plus an
// immediate stay in the given room.
func (s *Service) CreateAndCheckIn(ctx context.Context, params CreateParams, roomID uuid.UUID, checkIn time.Time) (*Tenant, error) {
	t, err := s.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.CheckIn(ctx, t.ID, roomID, checkIn); err != nil {
		return nil, err
	}

	return t, nil
}

// CheckOut closes the tenant's current stay and recomputes the vacated
// room's status from its remaining occupants.
func (s *Service) CheckOut(ctx context.Context, tenantID uuid.UUID, checkOut time.Time) error {
	rec, err := s.occupants.End(ctx, tenantID, checkOut)
	if err != nil {
		return err
	}

	count, err := s.occupants.CountCurrent(ctx, rec.RoomID)
	if err != nil {
		return err
	}

	return s.rooms.SyncOccupancyStatus(ctx, rec.RoomID, count)
}

// Remove checks the tenant out if needed and soft-deletes the record.
func (s *Service) Remove(ctx context.Context, tenantID uuid.UUID, when time.Time) error {
	if err := s.CheckOut(ctx, tenantID, when); err != nil && !errors.Is(err, occupancy.ErrNoCurrentStay) {
		return err
	}

	return s.repo.DeleteTenant(ctx, tenantID)
}

// ImportRoster onboards a parsed roster row by row. Each row resolves its
// room by number and runs the create-and-check-in flow; a failed row is
// reported with its line number and never blocks the rest of the file.
func (s *Service) ImportRoster(ctx context.Context, entries []RosterEntry) (*RosterResult, error) {
	result := &RosterResult{}

	for i, entry := range entries {
		line := i + 1

		r, err := s.rooms.GetByNumber(ctx, entry.RoomNumber)
		if err != nil {
			result.Failures = append(result.Failures, RosterFailure{
				Line:       line,
				RoomNumber: entry.RoomNumber,
				Err:        fmt.Errorf("resolving room: %w", err),
			})

			continue
		}

		t, err := s.CreateAndCheckIn(ctx, entry.Tenant, r.ID, time.Now())
		if err != nil {
			result.Failures = append(result.Failures, RosterFailure{
				Line:       line,
				RoomNumber: entry.RoomNumber,
				Err:        err,
			})

			continue
		}

		result.Created = append(result.Created, t)
	}

	return result, nil
}
