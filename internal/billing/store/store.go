package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRecordColumns = `
	b.id, b.room_id, r.room_number, b.tenant_id, b.billing_month,
	b.room_rent, b.water_units, b.water_cost, b.electricity_units, b.electricity_cost, b.sum,
	b.due_date, b.paid_date, b.status, b.receipt_number, b.edited_by,
	b.created_at, b.updated_at
`

// scanRecord reads a billing row in selectRecordColumns order.
func scanRecord(s scanner) (*billing.Record, error) {
	var rec billing.Record

	var statusStr string

	if err := s.Scan(
		&rec.ID, &rec.RoomID, &rec.RoomNumber, &rec.TenantID, &rec.Month,
		&rec.RoomRent, &rec.WaterUnits, &rec.WaterCost, &rec.ElectricityUnits, &rec.ElectricityCost, &rec.Total,
		&rec.DueDate, &rec.PaidDate, &statusStr, &rec.ReceiptNumber, &rec.EditedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.Status = billing.Status(statusStr)

	return &rec, nil
}

// RoomOccupancySnapshot returns every billable room: rooms not under
// maintenance that have at least one current occupant, with the occupant
// count and the last finalized meter reading. The representative tenant is
// the longest-staying current occupant.
func (s *Store) RoomOccupancySnapshot(ctx context.Context) ([]billing.RoomOccupancy, error) {
	query := `
		SELECT r.id, r.room_number, r.latest_meter_reading, r.monthly_rent,
			COUNT(o.id) AS occupant_count,
			(ARRAY_AGG(o.tenant_id ORDER BY o.check_in_date))[1] AS tenant_id
		FROM rooms r
		JOIN occupancy o ON o.room_id = r.id AND o.is_current
		WHERE r.status <> 'maintenance'
		GROUP BY r.id, r.room_number, r.latest_meter_reading, r.monthly_rent
		ORDER BY r.room_number ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading occupancy snapshot: %w", err)
	}
	defer rows.Close()

	var snapshot []billing.RoomOccupancy

	for rows.Next() {
		var ro billing.RoomOccupancy
		if err := rows.Scan(&ro.RoomID, &ro.RoomNumber, &ro.PreviousReading, &ro.MonthlyRent, &ro.OccupantCount, &ro.TenantID); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}

		snapshot = append(snapshot, ro)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}

	return snapshot, nil
}

func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (*billing.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM billing b
		JOIN rooms r ON b.room_id = r.id
		WHERE b.id = $1`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting billing record: %w", err)
	}

	return rec, nil
}

func (s *Store) ListRecords(ctx context.Context, filter billing.ListFilter) ([]*billing.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM billing b
		JOIN rooms r ON b.room_id = r.id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND b.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.RoomID != nil {
		query += fmt.Sprintf(" AND b.room_id = $%d", argIdx)

		args = append(args, *filter.RoomID)
		argIdx++
	}

	if filter.TenantID != nil {
		query += fmt.Sprintf(" AND b.tenant_id = $%d", argIdx)

		args = append(args, *filter.TenantID)
		argIdx++
	}

	if filter.MonthFrom != nil {
		query += fmt.Sprintf(" AND b.billing_month >= $%d", argIdx)

		args = append(args, *filter.MonthFrom)
		argIdx++
	}

	if filter.MonthTo != nil {
		query += fmt.Sprintf(" AND b.billing_month <= $%d", argIdx)

		args = append(args, *filter.MonthTo)
		argIdx++
	}

	query += " ORDER BY b.billing_month DESC, r.room_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing billing records: %w", err)
	}
	defer rows.Close()

	var recs []*billing.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning billing record: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billing rows: %w", err)
	}

	return recs, nil
}

// runLockKey derives the advisory lock key serializing bill creation for one
// (room, month) pair across sessions.
func runLockKey(roomID uuid.UUID, month time.Time) int64 {
	h := fnv.New64a()
	h.Write(roomID[:])
	h.Write([]byte{0})
	h.Write([]byte(month.Format("2006-01")))

	return int64(h.Sum64())
}

// CreateForRoom inserts one room's monthly bill and advances the room's
// stored meter reading in a single database transaction. The duplicate check
// runs under a per-(room, month) advisory lock so two concurrent runs cannot
// both insert.
func (s *Store) CreateForRoom(ctx context.Context, rec *billing.Record, meterReading int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	lockKey := runLockKey(rec.RoomID, rec.Month)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		return fmt.Errorf("acquiring billing lock: %w", err)
	}

	var exists bool
	if err := dbTx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM billing WHERE room_id = $1 AND billing_month = $2)",
		rec.RoomID, rec.Month,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking existing bill: %w", err)
	}

	if exists {
		return billing.ErrDuplicateMonth
	}

	insertQuery := `
		INSERT INTO billing (
			room_id, tenant_id, billing_month,
			room_rent, water_units, water_cost, electricity_units, electricity_cost, sum,
			due_date, status, receipt_number, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		rec.RoomID,
		rec.TenantID,
		rec.Month,
		rec.RoomRent,
		rec.WaterUnits,
		rec.WaterCost,
		rec.ElectricityUnits,
		rec.ElectricityCost,
		rec.Total,
		rec.DueDate,
		rec.Status,
		rec.ReceiptNumber,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating billing record: %w", err)
	}

	meterQuery := `
		UPDATE rooms
		SET latest_meter_reading = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := dbTx.ExecContext(ctx, meterQuery, meterReading, rec.RoomID); err != nil {
		return fmt.Errorf("advancing room meter: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing billing record: %w", err)
	}

	return nil
}

// ApplyEdit persists a recomputed record and pushes the corrected meter
// reading back to the room, atomically.
func (s *Store) ApplyEdit(ctx context.Context, rec *billing.Record, meterReading int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	updateQuery := `
		UPDATE billing
		SET electricity_units = $1, electricity_cost = $2, sum = $3, edited_by = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, updateQuery,
		rec.ElectricityUnits,
		rec.ElectricityCost,
		rec.Total,
		rec.EditedBy,
		rec.ID,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return billing.ErrNotFound
		}

		return fmt.Errorf("updating billing record: %w", err)
	}

	meterQuery := `
		UPDATE rooms
		SET latest_meter_reading = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := dbTx.ExecContext(ctx, meterQuery, meterReading, rec.RoomID); err != nil {
		return fmt.Errorf("advancing room meter: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing billing edit: %w", err)
	}

	return nil
}

func (s *Store) MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time) error {
	query := `
		UPDATE billing
		SET status = $1, paid_date = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	res, err := s.db.ExecContext(ctx, query, billing.StatusPaid, paidDate, id, billing.StatusPending)
	if err != nil {
		return fmt.Errorf("marking billing record paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking billing record paid: %w", err)
	}

	if affected == 0 {
		var statusStr string

		err := s.db.QueryRowContext(ctx, "SELECT status FROM billing WHERE id = $1", id).Scan(&statusStr)
		if err == sql.ErrNoRows {
			return billing.ErrNotFound
		}

		if err != nil {
			return fmt.Errorf("checking billing status: %w", err)
		}

		if billing.Status(statusStr) == billing.StatusPaid {
			return billing.ErrAlreadyPaid
		}

		return billing.ErrNotFound
	}

	return nil
}

func (s *Store) RoomMeter(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var reading int64

	err := s.db.QueryRowContext(ctx,
		"SELECT latest_meter_reading FROM rooms WHERE id = $1", roomID,
	).Scan(&reading)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("room %s not found", roomID)
		}

		return 0, fmt.Errorf("getting room meter: %w", err)
	}

	return reading, nil
}
