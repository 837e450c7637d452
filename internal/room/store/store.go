package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kritchanat/dormdesk/internal/room"
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

const selectRoomColumns = `
	id, room_number, floor, capacity, room_type, status, latest_meter_reading, monthly_rent,
	created_at, updated_at
`

func scanRoom(s scanner) (*room.Room, error) {
	var r room.Room

	var statusStr string

	if err := s.Scan(
		&r.ID, &r.RoomNumber, &r.Floor, &r.Capacity, &r.RoomType, &statusStr,
		&r.LatestMeterReading, &r.MonthlyRent, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = room.Status(statusStr)

	return &r, nil
}

// isUniqueViolation reports a Postgres unique constraint error (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateRoom(ctx context.Context, r *room.Room) error {
	query := `
		INSERT INTO rooms (room_number, floor, capacity, room_type, status, latest_meter_reading, monthly_rent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, NOW(), NOW())
		RETURNING id, latest_meter_reading, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.RoomNumber, r.Floor, r.Capacity, r.RoomType, r.Status, r.MonthlyRent,
	).Scan(&r.ID, &r.LatestMeterReading, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return room.ErrDuplicateNumber
		}

		return fmt.Errorf("creating room: %w", err)
	}

	return nil
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms WHERE id = $1`

	r, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, room.ErrNotFound
		}

		return nil, fmt.Errorf("getting room: %w", err)
	}

	return r, nil
}

func (s *Store) GetRoomByNumber(ctx context.Context, number string) (*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms WHERE room_number = $1`

	r, err := scanRoom(s.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, room.ErrNotFound
		}

		return nil, fmt.Errorf("getting room by number: %w", err)
	}

	return r, nil
}

func (s *Store) ListRooms(ctx context.Context, filter room.ListFilter) ([]*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Floor != nil {
		query += fmt.Sprintf(" AND floor = $%d", argIdx)

		args = append(args, *filter.Floor)
		argIdx++
	}

	query += " ORDER BY room_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*room.Room

	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}

		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}

	return rooms, nil
}

func (s *Store) UpdateRoom(ctx context.Context, r *room.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $1, floor = $2, capacity = $3, room_type = $4, status = $5, monthly_rent = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		r.RoomNumber, r.Floor, r.Capacity, r.RoomType, r.Status, r.MonthlyRent, r.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return room.ErrDuplicateNumber
		}

		return fmt.Errorf("updating room: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status room.Status) error {
	query := `
		UPDATE rooms
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating room status: %w", err)
	}

	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	return nil
}
