package room

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateRoom(ctx context.Context, r *Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*Room, error)
	ListRooms(ctx context.Context, filter ListFilter) ([]*Room, error)
	UpdateRoom(ctx context.Context, r *Room) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	RoomNumber  string
	Floor       int
	Capacity    int
	RoomType    string
	MonthlyRent *int64
}

type ListFilter struct {
	Status *Status
	Floor  *int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Room, error) {
	r := &Room{
		RoomNumber:  params.RoomNumber,
		Floor:       params.Floor,
		Capacity:    params.Capacity,
		RoomType:    params.RoomType,
		Status:      StatusVacant,
		MonthlyRent: params.MonthlyRent,
	}
	if err := s.repo.CreateRoom(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*Room, error) {
	return s.repo.GetRoomByNumber(ctx, number)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Room, error) {
	return s.repo.ListRooms(ctx, filter)
}

func (s *Service) Update(ctx context.Context, r *Room) error {
	return s.repo.UpdateRoom(ctx, r)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRoom(ctx, id)
}

// SyncOccupancyStatus recomputes a room's status from its current occupant
// count: occupied once at capacity, vacant otherwise. Maintenance is sticky
// and never overwritten here.
func (s *Service) SyncOccupancyStatus(ctx context.Context, id uuid.UUID, occupants int) error {
	r, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if r.Status == StatusMaintenance {
		return nil
	}

	status := StatusVacant
	if occupants >= r.Capacity {
		status = StatusOccupied
	}

	if status == r.Status {
		return nil
	}

	return s.repo.UpdateStatus(ctx, id, status)
}
