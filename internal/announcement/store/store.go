package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/announcement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAnnouncementColumns = `
	id, title, body, published, created_by, created_at, updated_at, deleted_at
`

func scanAnnouncement(s scanner) (*announcement.Announcement, error) {
	var a announcement.Announcement

	if err := s.Scan(
		&a.ID, &a.Title, &a.Body, &a.Published, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Store) CreateAnnouncement(ctx context.Context, a *announcement.Announcement) error {
	query := `
		INSERT INTO announcements (title, body, published, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.Title, a.Body, a.Published, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating announcement: %w", err)
	}

	return nil
}

func (s *Store) GetAnnouncement(ctx context.Context, id uuid.UUID) (*announcement.Announcement, error) {
	query := `SELECT ` + selectAnnouncementColumns + `
		FROM announcements
		WHERE id = $1 AND deleted_at IS NULL`

	a, err := scanAnnouncement(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, announcement.ErrNotFound
		}

		return nil, fmt.Errorf("getting announcement: %w", err)
	}

	return a, nil
}

func (s *Store) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*announcement.Announcement, error) {
	query := `SELECT ` + selectAnnouncementColumns + `
		FROM announcements
		WHERE deleted_at IS NULL`

	if publishedOnly {
		query += " AND published"
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*announcement.Announcement

	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning announcement: %w", err)
		}

		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating announcement rows: %w", err)
	}

	return announcements, nil
}

func (s *Store) UpdateAnnouncement(ctx context.Context, a *announcement.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, body = $2, published = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, a.Title, a.Body, a.Published, a.ID)
	if err != nil {
		return fmt.Errorf("updating announcement: %w", err)
	}

	return nil
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE announcements
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting announcement: %w", err)
	}

	return nil
}
