package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/staff"
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

const selectStaffColumns = `
	id, first_name, last_name, position, phone, email, salary, hired_at,
	created_at, updated_at, deleted_at
`

func scanStaff(s scanner) (*staff.Staff, error) {
	var m staff.Staff

	if err := s.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Position, &m.Phone, &m.Email, &m.Salary, &m.HiredAt,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Store) CreateStaff(ctx context.Context, m *staff.Staff) error {
	query := `
		INSERT INTO staffs (first_name, last_name, position, phone, email, salary, hired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.FirstName, m.LastName, m.Position, m.Phone, m.Email, m.Salary, m.HiredAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating staff member: %w", err)
	}

	return nil
}

func (s *Store) GetStaff(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	query := `SELECT ` + selectStaffColumns + `
		FROM staffs
		WHERE id = $1 AND deleted_at IS NULL`

	m, err := scanStaff(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, staff.ErrNotFound
		}

		return nil, fmt.Errorf("getting staff member: %w", err)
	}

	return m, nil
}

func (s *Store) ListStaff(ctx context.Context) ([]*staff.Staff, error) {
	query := `SELECT ` + selectStaffColumns + `
		FROM staffs
		WHERE deleted_at IS NULL
		ORDER BY hired_at ASC, first_name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	defer rows.Close()

	var members []*staff.Staff

	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning staff member: %w", err)
		}

		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff rows: %w", err)
	}

	return members, nil
}

func (s *Store) UpdateStaff(ctx context.Context, m *staff.Staff) error {
	query := `
		UPDATE staffs
		SET first_name = $1, last_name = $2, position = $3, phone = $4, email = $5, salary = $6, hired_at = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		m.FirstName, m.LastName, m.Position, m.Phone, m.Email, m.Salary, m.HiredAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating staff member: %w", err)
	}

	return nil
}

func (s *Store) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE staffs
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting staff member: %w", err)
	}

	return nil
}
