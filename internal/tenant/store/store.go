package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/tenant"
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

// Current room is resolved through the occupancy join; historical stays do
// not surface here.
const selectTenantColumns = `
	t.id, t.first_name, t.last_name, t.email, t.phone, t.address, t.emergency_contact,
	o.room_id, COALESCE(r.room_number, ''),
	t.created_at, t.updated_at, t.deleted_at
`

const tenantJoins = `
	FROM tenants t
	LEFT JOIN occupancy o ON o.tenant_id = t.id AND o.is_current
	LEFT JOIN rooms r ON r.id = o.room_id
`

func scanTenant(s scanner) (*tenant.Tenant, error) {
	var t tenant.Tenant

	if err := s.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.Address, &t.EmergencyContact,
		&t.RoomID, &t.RoomNumber,
		&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Store) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (first_name, last_name, email, phone, address, emergency_contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.FirstName, t.LastName, t.Email, t.Phone, t.Address, t.EmergencyContact,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating tenant: %w", err)
	}

	return nil
}

func (s *Store) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	query := `SELECT ` + selectTenantColumns + tenantJoins + `
		WHERE t.id = $1 AND t.deleted_at IS NULL`

	t, err := scanTenant(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, tenant.ErrNotFound
		}

		return nil, fmt.Errorf("getting tenant: %w", err)
	}

	return t, nil
}

func (s *Store) ListTenants(ctx context.Context, filter tenant.ListFilter) ([]*tenant.Tenant, error) {
	query := `SELECT ` + selectTenantColumns + tenantJoins + `
		WHERE t.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.RoomID != nil {
		query += fmt.Sprintf(" AND o.room_id = $%d", argIdx)

		args = append(args, *filter.RoomID)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (t.first_name ILIKE $%d OR t.last_name ILIKE $%d OR t.phone ILIKE $%d)",
			argIdx, argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY t.first_name ASC, t.last_name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant

	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}

		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenant rows: %w", err)
	}

	return tenants, nil
}

func (s *Store) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	query := `
		UPDATE tenants
		SET first_name = $1, last_name = $2, email = $3, phone = $4, address = $5, emergency_contact = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		t.FirstName, t.LastName, t.Email, t.Phone, t.Address, t.EmergencyContact, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tenant: %w", err)
	}

	return nil
}

func (s *Store) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tenants
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting tenant: %w", err)
	}

	return nil
}
