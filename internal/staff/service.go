package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateStaff(ctx context.Context, s *Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error)
	ListStaff(ctx context.Context) ([]*Staff, error)
	UpdateStaff(ctx context.Context, s *Staff) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Staff) error {
	return s.repo.CreateStaff(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.repo.GetStaff(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Staff, error) {
	return s.repo.ListStaff(ctx)
}

func (s *Service) Update(ctx context.Context, m *Staff) error {
	return s.repo.UpdateStaff(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStaff(ctx, id)
}
