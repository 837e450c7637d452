package occupancy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	CurrentByTenant(ctx context.Context, tenantID uuid.UUID) (*Record, error)
	EndCurrent(ctx context.Context, tenantID uuid.UUID, checkOut time.Time) (*Record, error)
	CountCurrent(ctx context.Context, roomID uuid.UUID) (int, error)
	ListCurrentByRoom(ctx context.Context, roomID uuid.UUID) ([]*Record, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Record, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Begin opens a current stay for the tenant in the room.
func (s *Service) Begin(ctx context.Context, tenantID, roomID uuid.UUID, checkIn time.Time) (*Record, error) {
	rec := &Record{
		TenantID:    tenantID,
		RoomID:      roomID,
		CheckInDate: checkIn,
		IsCurrent:   true,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// End closes the tenant's current stay and returns it so callers can see
// which room was vacated.
func (s *Service) End(ctx context.Context, tenantID uuid.UUID, checkOut time.Time) (*Record, error) {
	return s.repo.EndCurrent(ctx, tenantID, checkOut)
}

func (s *Service) Current(ctx context.Context, tenantID uuid.UUID) (*Record, error) {
	return s.repo.CurrentByTenant(ctx, tenantID)
}

func (s *Service) CountCurrent(ctx context.Context, roomID uuid.UUID) (int, error) {
	return s.repo.CountCurrent(ctx, roomID)
}

func (s *Service) ListCurrentByRoom(ctx context.Context, roomID uuid.UUID) ([]*Record, error) {
	return s.repo.ListCurrentByRoom(ctx, roomID)
}

func (s *Service) History(ctx context.Context, tenantID uuid.UUID) ([]*Record, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}
