package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	RoomOccupancySnapshot(ctx context.Context) ([]RoomOccupancy, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, error)
	CreateForRoom(ctx context.Context, rec *Record, meterReading int64) error
	ApplyEdit(ctx context.Context, rec *Record, meterReading int64) error
	MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time) error
	RoomMeter(ctx context.Context, roomID uuid.UUID) (int64, error)
}

// RatesSource supplies the configured rates for one computation. Rates are
// re-read at the start of every run so settings changes apply without
// restarts, but within a run every room sees the same values.
type RatesSource interface {
	BillingRates(ctx context.Context) (Rates, error)
}

type Service struct {
	repo   Repository
	rates  RatesSource
	dueDay int
}

func NewService(repo Repository, rates RatesSource, dueDay int) *Service {
	return &Service{repo: repo, rates: rates, dueDay: dueDay}
}

type ListFilter struct {
	Status    *Status
	RoomID    *uuid.UUID
	TenantID  *uuid.UUID
	MonthFrom *time.Time
	MonthTo   *time.Time
}

// RunParams describes one monthly billing batch. Readings maps room IDs to
// the meter value entered for this month; rooms without an entry are billed
// at their previous reading (zero electricity units).
type RunParams struct {
	Month    time.Time
	DueDate  time.Time
	Readings map[uuid.UUID]int64
}

// RoomFailure records why one room in a batch did not get a bill.
type RoomFailure struct {
	RoomID     uuid.UUID
	RoomNumber string
	Err        error
}

func (f RoomFailure) Message() string {
	return fmt.Sprintf("room %s: %v", f.RoomNumber, f.Err)
}

// RunResult is the aggregate outcome of a best-effort batch: every room is
// processed independently and lands in exactly one of the two lists.
type RunResult struct {
	Created  []*Record
	Failures []RoomFailure
}

func (r *RunResult) AllSucceeded() bool {
	return len(r.Failures) == 0
}

// Run executes a monthly billing batch over the current room/occupancy
// snapshot. Meter readings are validated against the stored previous reading
// for every room before anything is written; any violation fails the whole
// batch. After the gate, rooms are processed one at a time and a failure
// (duplicate bill, store error) is recorded without blocking sibling rooms.
func (s *Service) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	month := NormalizeMonth(params.Month)

	due := params.DueDate
	if due.IsZero() {
		due = DefaultDueDate(month, s.dueDay)
	}

	rates, err := s.rates.BillingRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rates: %w", err)
	}

	snapshot, err := s.repo.RoomOccupancySnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading room occupancy: %w", err)
	}

	readings := make(map[uuid.UUID]int64, len(snapshot))

	var invalid []error

	for _, room := range snapshot {
		current, ok := params.Readings[room.RoomID]
		if !ok {
			current = room.PreviousReading
		}

		if current < room.PreviousReading {
			invalid = append(invalid, &ReadingError{
				RoomNumber: room.RoomNumber,
				Previous:   room.PreviousReading,
				Current:    current,
			})
		}

		readings[room.RoomID] = current
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid meter readings: %w", errors.Join(invalid...))
	}

	result := &RunResult{}

	for _, room := range snapshot {
		current := readings[room.RoomID]

		// A room-level rent override beats the settings default.
		roomRates := rates
		if room.MonthlyRent != nil {
			roomRates.Rent = *room.MonthlyRent
		}

		charges := Compute(room.OccupantCount, room.PreviousReading, current, roomRates)

		rec := &Record{
			RoomID:           room.RoomID,
			RoomNumber:       room.RoomNumber,
			TenantID:         room.TenantID,
			Month:            month,
			RoomRent:         roomRates.Rent,
			WaterUnits:       charges.WaterUnits,
			WaterCost:        charges.WaterCost,
			ElectricityUnits: charges.ElectricityUnits,
			ElectricityCost:  charges.ElectricityCost,
			Total:            charges.Total,
			DueDate:          due,
			Status:           StatusPending,
			ReceiptNumber:    ReceiptNumber(month, room.RoomNumber),
		}

		if err := s.repo.CreateForRoom(ctx, rec, current); err != nil {
			result.Failures = append(result.Failures, RoomFailure{
				RoomID:     room.RoomID,
				RoomNumber: room.RoomNumber,
				Err:        err,
			})

			continue
		}

		result.Created = append(result.Created, rec)
	}

	return result, nil
}

// EditReading corrects a bill's meter reading after creation. Unlike Run it
// adds the new delta to the stored electricity units and reuses the stored
// room rent and water cost as-is; only the electricity cost and the sum are
// recomputed, with the cost clamped at zero. The room's stored reading is
// advanced to the new value.
func (s *Service) EditReading(ctx context.Context, id uuid.UUID, newMeter int64, editedBy uuid.UUID) (*Record, error) {
	rec, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	previous, err := s.repo.RoomMeter(ctx, rec.RoomID)
	if err != nil {
		return nil, fmt.Errorf("loading room meter: %w", err)
	}

	if newMeter < previous {
		return nil, &ReadingError{
			RoomNumber: rec.RoomNumber,
			Previous:   previous,
			Current:    newMeter,
		}
	}

	rates, err := s.rates.BillingRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rates: %w", err)
	}

	units := rec.ElectricityUnits + (newMeter - previous)

	cost := units * rates.Electricity
	if cost < 0 {
		cost = 0
	}

	rec.ElectricityUnits = units
	rec.ElectricityCost = cost
	rec.Total = rec.RoomRent + rec.WaterCost + cost
	rec.EditedBy = &editedBy

	if err := s.repo.ApplyEdit(ctx, rec, newMeter); err != nil {
		return nil, err
	}

	return rec, nil
}

// MarkPaid transitions a pending record to paid and stamps the paid date.
// Paid is terminal; the amounts are untouched.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time) error {
	return s.repo.MarkPaid(ctx, id, paidDate)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, filter)
}

// Snapshot returns the per-room occupancy and meter state a billing run
// starts from.
func (s *Service) Snapshot(ctx context.Context) ([]RoomOccupancy, error) {
	return s.repo.RoomOccupancySnapshot(ctx)
}
