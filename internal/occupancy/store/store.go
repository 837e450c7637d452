package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/occupancy"
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

const selectOccupancyColumns = `
	id, tenant_id, room_id, check_in_date, check_out_date, is_current, created_at
`

func scanRecord(s scanner) (*occupancy.Record, error) {
	var rec occupancy.Record

	if err := s.Scan(
		&rec.ID, &rec.TenantID, &rec.RoomID, &rec.CheckInDate, &rec.CheckOutDate,
		&rec.IsCurrent, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (s *Store) Create(ctx context.Context, rec *occupancy.Record) error {
	query := `
		INSERT INTO occupancy (tenant_id, room_id, check_in_date, is_current, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.TenantID, rec.RoomID, rec.CheckInDate, rec.IsCurrent,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating occupancy record: %w", err)
	}

	return nil
}

func (s *Store) CurrentByTenant(ctx context.Context, tenantID uuid.UUID) (*occupancy.Record, error) {
	query := `SELECT ` + selectOccupancyColumns + `
		FROM occupancy
		WHERE tenant_id = $1 AND is_current`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, tenantID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, occupancy.ErrNoCurrentStay
		}

		return nil, fmt.Errorf("getting current occupancy: %w", err)
	}

	return rec, nil
}

// EndCurrent flips the tenant's current stay to historical and stamps the
// check-out date.
func (s *Store) EndCurrent(ctx context.Context, tenantID uuid.UUID, checkOut time.Time) (*occupancy.Record, error) {
	query := `
		UPDATE occupancy
		SET is_current = FALSE, check_out_date = $1
		WHERE tenant_id = $2 AND is_current
		RETURNING ` + selectOccupancyColumns

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, checkOut, tenantID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, occupancy.ErrNoCurrentStay
		}

		return nil, fmt.Errorf("ending occupancy: %w", err)
	}

	return rec, nil
}

func (s *Store) CountCurrent(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM occupancy WHERE room_id = $1 AND is_current", roomID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting occupants: %w", err)
	}

	return count, nil
}

func (s *Store) ListCurrentByRoom(ctx context.Context, roomID uuid.UUID) ([]*occupancy.Record, error) {
	query := `SELECT ` + selectOccupancyColumns + `
		FROM occupancy
		WHERE room_id = $1 AND is_current
		ORDER BY check_in_date ASC`

	return s.list(ctx, query, roomID)
}

func (s *Store) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*occupancy.Record, error) {
	query := `SELECT ` + selectOccupancyColumns + `
		FROM occupancy
		WHERE tenant_id = $1
		ORDER BY check_in_date DESC`

	return s.list(ctx, query, tenantID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*occupancy.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing occupancy records: %w", err)
	}
	defer rows.Close()

	var recs []*occupancy.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning occupancy record: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occupancy rows: %w", err)
	}

	return recs, nil
}
