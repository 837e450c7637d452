package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kritchanat/dormdesk/internal/billing"
)

var testRates = billing.Rates{Water: 2000, Electricity: 700, Rent: 300000}

func month(y, m int) time.Time {
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}

func TestService_Run_CreatesBillsForEveryRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	roomA := uuid.New()
	roomB := uuid.New()
	snapshot := []billing.RoomOccupancy{
		{RoomID: roomA, RoomNumber: "101", OccupantCount: 2, PreviousReading: 100},
		{RoomID: roomB, RoomNumber: "102", OccupantCount: 1, PreviousReading: 300},
	}

	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().RoomOccupancySnapshot(gomock.Any()).Return(snapshot, nil)

	var created []*billing.Record

	repo.EXPECT().
		CreateForRoom(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(2).
		DoAndReturn(func(_ context.Context, rec *billing.Record, meterReading int64) error {
			rec.ID = uuid.New()
			rec.CreatedAt = time.Now()
			created = append(created, rec)
			return nil
		})

	result, err := svc.Run(context.Background(), billing.RunParams{
		Month:    time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Readings: map[uuid.UUID]int64{roomA: 150, roomB: 320},
	})
	require.NoError(t, err)
	require.True(t, result.AllSucceeded())
	require.Len(t, result.Created, 2)

	first := result.Created[0]
	assert.Equal(t, month(2026, 3), first.Month)
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.Equal(t, billing.StatusPending, first.Status)
	assert.Equal(t, "R202603-101", first.ReceiptNumber)
	assert.Equal(t, int64(4000), first.WaterCost)
	assert.Equal(t, int64(50), first.ElectricityUnits)
	assert.Equal(t, int64(35000), first.ElectricityCost)
	assert.Equal(t, int64(339000), first.Total)

	second := result.Created[1]
	assert.Equal(t, int64(20), second.ElectricityUnits)
	assert.Equal(t, int64(300000+2000+14000), second.Total)
}

func TestService_Run_InvalidReadingBlocksWholeBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	roomA := uuid.New()
	roomB := uuid.New()
	snapshot := []billing.RoomOccupancy{
		{RoomID: roomA, RoomNumber: "101", OccupantCount: 2, PreviousReading: 100},
		{RoomID: roomB, RoomNumber: "102", OccupantCount: 1, PreviousReading: 300},
	}

	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().RoomOccupancySnapshot(gomock.Any()).Return(snapshot, nil)
	// No CreateForRoom expectation: a reading below the previous one must
	// fail the batch before any persistence call.

	result, err := svc.Run(context.Background(), billing.RunParams{
		Month:    month(2026, 3),
		Readings: map[uuid.UUID]int64{roomA: 150, roomB: 250},
	})
	require.Error(t, err)
	assert.Nil(t, result)

	var readingErr *billing.ReadingError
	require.ErrorAs(t, err, &readingErr)
	assert.Equal(t, "102", readingErr.RoomNumber)
}

func TestService_Run_DuplicateRoomSkippedOthersSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	rooms := []billing.RoomOccupancy{
		{RoomID: uuid.New(), RoomNumber: "101", OccupantCount: 1, PreviousReading: 10},
		{RoomID: uuid.New(), RoomNumber: "102", OccupantCount: 1, PreviousReading: 20},
		{RoomID: uuid.New(), RoomNumber: "103", OccupantCount: 1, PreviousReading: 30},
	}

	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().RoomOccupancySnapshot(gomock.Any()).Return(rooms, nil)

	repo.EXPECT().
		CreateForRoom(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, rec *billing.Record, _ int64) error {
			if rec.RoomNumber == "102" {
				return billing.ErrDuplicateMonth
			}

			rec.ID = uuid.New()
			return nil
		})

	result, err := svc.Run(context.Background(), billing.RunParams{Month: month(2026, 3)})
	require.NoError(t, err)

	// N-1 bills and one named failure, never zero and never N.
	assert.Len(t, result.Created, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "102", result.Failures[0].RoomNumber)
	assert.ErrorIs(t, result.Failures[0].Err, billing.ErrDuplicateMonth)
	assert.False(t, result.AllSucceeded())
}

func TestService_Run_RoomRentOverrideBeatsDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	customRent := int64(450000)
	roomA := uuid.New()
	roomB := uuid.New()
	snapshot := []billing.RoomOccupancy{
		{RoomID: roomA, RoomNumber: "101", OccupantCount: 1, PreviousReading: 100, MonthlyRent: &customRent},
		{RoomID: roomB, RoomNumber: "102", OccupantCount: 1, PreviousReading: 100},
	}

	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().RoomOccupancySnapshot(gomock.Any()).Return(snapshot, nil)
	repo.EXPECT().
		CreateForRoom(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(2).
		Return(nil)

	result, err := svc.Run(context.Background(), billing.RunParams{Month: month(2026, 3)})
	require.NoError(t, err)
	require.Len(t, result.Created, 2)

	overridden := result.Created[0]
	assert.Equal(t, customRent, overridden.RoomRent)
	assert.Equal(t, customRent+2000, overridden.Total)

	defaulted := result.Created[1]
	assert.Equal(t, testRates.Rent, defaulted.RoomRent)
	assert.Equal(t, testRates.Rent+2000, defaulted.Total)
}

func TestService_Run_MissingReadingBillsZeroUnits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	roomID := uuid.New()
	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().RoomOccupancySnapshot(gomock.Any()).Return([]billing.RoomOccupancy{
		{RoomID: roomID, RoomNumber: "101", OccupantCount: 2, PreviousReading: 500},
	}, nil)

	repo.EXPECT().
		CreateForRoom(gomock.Any(), gomock.Any(), int64(500)).
		DoAndReturn(func(_ context.Context, rec *billing.Record, _ int64) error {
			assert.Equal(t, int64(0), rec.ElectricityUnits)
			assert.Equal(t, int64(304000), rec.Total)
			return nil
		})

	result, err := svc.Run(context.Background(), billing.RunParams{Month: month(2026, 3)})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
}

func TestService_Run_SnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().RoomOccupancySnapshot(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := svc.Run(context.Background(), billing.RunParams{Month: month(2026, 3)})
	assert.Error(t, err)
}

func TestService_EditReading(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	billID := uuid.New()
	roomID := uuid.New()
	editor := uuid.New()

	stored := &billing.Record{
		ID:               billID,
		RoomID:           roomID,
		RoomNumber:       "101",
		RoomRent:         300000,
		WaterUnits:       2,
		WaterCost:        4000,
		ElectricityUnits: 50,
		ElectricityCost:  35000,
		Total:            339000,
		Status:           billing.StatusPending,
	}

	repo.EXPECT().GetRecord(gomock.Any(), billID).Return(stored, nil)
	repo.EXPECT().RoomMeter(gomock.Any(), roomID).Return(int64(150), nil)
	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().ApplyEdit(gomock.Any(), stored, int64(170)).Return(nil)

	rec, err := svc.EditReading(context.Background(), billID, 170, editor)
	require.NoError(t, err)

	// Units grow by the new delta; water cost is reused, not recomputed.
	assert.Equal(t, int64(70), rec.ElectricityUnits)
	assert.Equal(t, int64(49000), rec.ElectricityCost)
	assert.Equal(t, int64(300000+4000+49000), rec.Total)
	require.NotNil(t, rec.EditedBy)
	assert.Equal(t, editor, *rec.EditedBy)
}

func TestService_EditReading_CostClampedAtZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	billID := uuid.New()
	roomID := uuid.New()

	// A record holding negative units, as migrated legacy rows can. A zero
	// delta keeps the units negative; the cost must clamp at zero instead of
	// going negative.
	stored := &billing.Record{
		ID:               billID,
		RoomID:           roomID,
		RoomNumber:       "101",
		RoomRent:         300000,
		WaterUnits:       1,
		WaterCost:        2000,
		ElectricityUnits: -5,
		ElectricityCost:  0,
		Status:           billing.StatusPending,
	}

	repo.EXPECT().GetRecord(gomock.Any(), billID).Return(stored, nil)
	repo.EXPECT().RoomMeter(gomock.Any(), roomID).Return(int64(150), nil)
	rates.EXPECT().BillingRates(gomock.Any()).Return(testRates, nil)
	repo.EXPECT().ApplyEdit(gomock.Any(), stored, int64(150)).Return(nil)

	rec, err := svc.EditReading(context.Background(), billID, 150, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(-5), rec.ElectricityUnits)
	assert.Equal(t, int64(0), rec.ElectricityCost)
	assert.Equal(t, int64(300000+2000), rec.Total)
}

func TestService_EditReading_BelowPreviousRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	billID := uuid.New()
	roomID := uuid.New()

	repo.EXPECT().GetRecord(gomock.Any(), billID).Return(&billing.Record{
		ID:         billID,
		RoomID:     roomID,
		RoomNumber: "101",
	}, nil)
	repo.EXPECT().RoomMeter(gomock.Any(), roomID).Return(int64(150), nil)

	_, err := svc.EditReading(context.Background(), billID, 120, uuid.New())

	var readingErr *billing.ReadingError
	require.ErrorAs(t, err, &readingErr)
	assert.Equal(t, int64(150), readingErr.Previous)
	assert.Equal(t, int64(120), readingErr.Current)
}

func TestService_MarkPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	rates := billing.NewMockRatesSource(ctrl)
	svc := billing.NewService(repo, rates, 5)

	id := uuid.New()
	paidAt := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().MarkPaid(gomock.Any(), id, paidAt).Return(nil)
	require.NoError(t, svc.MarkPaid(context.Background(), id, paidAt))

	repo.EXPECT().MarkPaid(gomock.Any(), id, paidAt).Return(billing.ErrAlreadyPaid)
	assert.ErrorIs(t, svc.MarkPaid(context.Background(), id, paidAt), billing.ErrAlreadyPaid)
}
