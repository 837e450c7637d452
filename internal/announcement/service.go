package announcement

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateAnnouncement(ctx context.Context, a *Announcement) error
	GetAnnouncement(ctx context.Context, id uuid.UUID) (*Announcement, error)
	ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *Announcement) error
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Announcement) error {
	return s.repo.CreateAnnouncement(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	return s.repo.GetAnnouncement(ctx, id)
}

// List returns announcements newest first. When publishedOnly is set,
// drafts are excluded; tenant-facing callers always set it.
func (s *Service) List(ctx context.Context, publishedOnly bool) ([]*Announcement, error) {
	return s.repo.ListAnnouncements(ctx, publishedOnly)
}

func (s *Service) Update(ctx context.Context, a *Announcement) error {
	return s.repo.UpdateAnnouncement(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAnnouncement(ctx, id)
}
