package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kritchanat/dormdesk/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// system_settings is a single-row table; the fixed id keeps it that way.

func (s *Store) Get(ctx context.Context) (*settings.Settings, error) {
	query := `
		SELECT water_rate, electricity_rate, deposit_rate, late_fee, floor_count, updated_at, updated_by
		FROM system_settings
		WHERE id = 1
	`

	var st settings.Settings

	err := s.db.QueryRowContext(ctx, query).Scan(
		&st.WaterRate, &st.ElectricityRate, &st.DepositRate, &st.LateFee, &st.FloorCount,
		&st.UpdatedAt, &st.UpdatedBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, settings.ErrNotConfigured
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return &st, nil
}

func (s *Store) Save(ctx context.Context, st *settings.Settings) error {
	query := `
		INSERT INTO system_settings (id, water_rate, electricity_rate, deposit_rate, late_fee, floor_count, updated_at, updated_by)
		VALUES (1, $1, $2, $3, $4, $5, NOW(), $6)
		ON CONFLICT (id) DO UPDATE SET
			water_rate = EXCLUDED.water_rate,
			electricity_rate = EXCLUDED.electricity_rate,
			deposit_rate = EXCLUDED.deposit_rate,
			late_fee = EXCLUDED.late_fee,
			floor_count = EXCLUDED.floor_count,
			updated_at = NOW(),
			updated_by = EXCLUDED.updated_by
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		st.WaterRate, st.ElectricityRate, st.DepositRate, st.LateFee, st.FloorCount, st.UpdatedBy,
	).Scan(&st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}
