package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritchanat/dormdesk/internal/occupancy"
	"github.com/kritchanat/dormdesk/internal/room"
)

// In-memory fakes

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*Tenant
	deleted []uuid.UUID
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]*Tenant)}
}

func (f *fakeTenantRepo) CreateTenant(ctx context.Context, t *Tenant) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	f.tenants[t.ID] = t

	return nil
}

func (f *fakeTenantRepo) GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}

	return t, nil
}

func (f *fakeTenantRepo) ListTenants(ctx context.Context, filter ListFilter) ([]*Tenant, error) {
	var out []*Tenant
	for _, t := range f.tenants {
		out = append(out, t)
	}

	return out, nil
}

func (f *fakeTenantRepo) UpdateTenant(ctx context.Context, t *Tenant) error { return nil }

func (f *fakeTenantRepo) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.tenants, id)

	return nil
}

type fakeRoomRepo struct {
	rooms map[uuid.UUID]*room.Room
}

func newFakeRoomRepo(rooms ...*room.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{rooms: make(map[uuid.UUID]*room.Room)}
	for _, r := range rooms {
		f.rooms[r.ID] = r
	}

	return f
}

func (f *fakeRoomRepo) CreateRoom(ctx context.Context, r *room.Room) error {
	r.ID = uuid.New()
	f.rooms[r.ID] = r

	return nil
}

func (f *fakeRoomRepo) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}

	return r, nil
}

func (f *fakeRoomRepo) GetRoomByNumber(ctx context.Context, number string) (*room.Room, error) {
	for _, r := range f.rooms {
		if r.RoomNumber == number {
			return r, nil
		}
	}

	return nil, room.ErrNotFound
}

func (f *fakeRoomRepo) ListRooms(ctx context.Context, filter room.ListFilter) ([]*room.Room, error) {
	return nil, nil
}

func (f *fakeRoomRepo) UpdateRoom(ctx context.Context, r *room.Room) error { return nil }

func (f *fakeRoomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status room.Status) error {
	r, ok := f.rooms[id]
	if !ok {
		return room.ErrNotFound
	}

	r.Status = status

	return nil
}

func (f *fakeRoomRepo) DeleteRoom(ctx context.Context, id uuid.UUID) error { return nil }

type fakeOccupancyRepo struct {
	records []*occupancy.Record
}

func (f *fakeOccupancyRepo) Create(ctx context.Context, rec *occupancy.Record) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	f.records = append(f.records, rec)

	return nil
}

func (f *fakeOccupancyRepo) CurrentByTenant(ctx context.Context, tenantID uuid.UUID) (*occupancy.Record, error) {
	for _, rec := range f.records {
		if rec.TenantID == tenantID && rec.IsCurrent {
			return rec, nil
		}
	}

	return nil, occupancy.ErrNoCurrentStay
}

func (f *fakeOccupancyRepo) EndCurrent(ctx context.Context, tenantID uuid.UUID, checkOut time.Time) (*occupancy.Record, error) {
	for _, rec := range f.records {
		if rec.TenantID == tenantID && rec.IsCurrent {
			rec.IsCurrent = false
			rec.CheckOutDate = &checkOut

			return rec, nil
		}
	}

	return nil, occupancy.ErrNoCurrentStay
}

func (f *fakeOccupancyRepo) CountCurrent(ctx context.Context, roomID uuid.UUID) (int, error) {
	count := 0

	for _, rec := range f.records {
		if rec.RoomID == roomID && rec.IsCurrent {
			count++
		}
	}

	return count, nil
}

func (f *fakeOccupancyRepo) ListCurrentByRoom(ctx context.Context, roomID uuid.UUID) ([]*occupancy.Record, error) {
	var out []*occupancy.Record

	for _, rec := range f.records {
		if rec.RoomID == roomID && rec.IsCurrent {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (f *fakeOccupancyRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*occupancy.Record, error) {
	var out []*occupancy.Record

	for _, rec := range f.records {
		if rec.TenantID == tenantID {
			out = append(out, rec)
		}
	}

	return out, nil
}

func newTestService(rooms ...*room.Room) (*Service, *fakeTenantRepo, *fakeOccupancyRepo, *fakeRoomRepo) {
	tenantRepo := newFakeTenantRepo()
	occupancyRepo := &fakeOccupancyRepo{}
	roomRepo := newFakeRoomRepo(rooms...)

	svc := NewService(tenantRepo, occupancy.NewService(occupancyRepo), room.NewService(roomRepo))

	return svc, tenantRepo, occupancyRepo, roomRepo
}

func testRoom(number string, capacity int, status room.Status) *room.Room {
	return &room.Room{
		ID:         uuid.New(),
		RoomNumber: number,
		Capacity:   capacity,
		Status:     status,
	}
}

func TestCheckIn(t *testing.T) {
	rm := testRoom("101", 1, room.StatusVacant)
	svc, _, occupancyRepo, roomRepo := newTestService(rm)

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)

	err = svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now())
	require.NoError(t, err)

	rec, err := occupancyRepo.CurrentByTenant(context.Background(), tn.ID)
	require.NoError(t, err)
	assert.Equal(t, rm.ID, rec.RoomID)

	// Single-bed room is full now.
	assert.Equal(t, room.StatusOccupied, roomRepo.rooms[rm.ID].Status)
}

func TestCheckInBelowCapacityStaysVacant(t *testing.T) {
	rm := testRoom("201", 2, room.StatusVacant)
	svc, _, _, roomRepo := newTestService(rm)

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)

	require.NoError(t, svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now()))

	assert.Equal(t, room.StatusVacant, roomRepo.rooms[rm.ID].Status)
}

func TestCheckInMaintenanceRoom(t *testing.T) {
	rm := testRoom("101", 1, room.StatusMaintenance)
	svc, _, _, _ := newTestService(rm)

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)

	err = svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now())
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestCheckInTwice(t *testing.T) {
	rm := testRoom("101", 2, room.StatusVacant)
	svc, _, _, _ := newTestService(rm)

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)

	require.NoError(t, svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now()))

	err = svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckInFullRoom(t *testing.T) {
	rm := testRoom("101", 1, room.StatusVacant)
	svc, _, _, _ := newTestService(rm)

	first, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)
	require.NoError(t, svc.CheckIn(context.Background(), first.ID, rm.ID, time.Now()))

	second, err := svc.Create(context.Background(), CreateParams{FirstName: "Malee"})
	require.NoError(t, err)

	err = svc.CheckIn(context.Background(), second.ID, rm.ID, time.Now())
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestCheckOut(t *testing.T) {
	rm := testRoom("101", 1, room.StatusVacant)
	svc, _, occupancyRepo, roomRepo := newTestService(rm)

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)
	require.NoError(t, svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now()))

	err = svc.CheckOut(context.Background(), tn.ID, time.Now())
	require.NoError(t, err)

	_, err = occupancyRepo.CurrentByTenant(context.Background(), tn.ID)
	assert.ErrorIs(t, err, occupancy.ErrNoCurrentStay)

	assert.Equal(t, room.StatusVacant, roomRepo.rooms[rm.ID].Status)
}

func TestCheckOutWithoutStay(t *testing.T) {
	svc, _, _, _ := newTestService()

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)

	err = svc.CheckOut(context.Background(), tn.ID, time.Now())
	assert.ErrorIs(t, err, occupancy.ErrNoCurrentStay)
}

func TestRemoveChecksOutFirst(t *testing.T) {
	rm := testRoom("101", 1, room.StatusVacant)
	svc, tenantRepo, _, roomRepo := newTestService(rm)

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)
	require.NoError(t, svc.CheckIn(context.Background(), tn.ID, rm.ID, time.Now()))

	err = svc.Remove(context.Background(), tn.ID, time.Now())
	require.NoError(t, err)

	assert.Contains(t, tenantRepo.deleted, tn.ID)
	assert.Equal(t, room.StatusVacant, roomRepo.rooms[rm.ID].Status)
}

func TestRemoveWithoutStay(t *testing.T) {
	svc, tenantRepo, _, _ := newTestService()

	tn, err := svc.Create(context.Background(), CreateParams{FirstName: "Somchai"})
	require.NoError(t, err)

	err = svc.Remove(context.Background(), tn.ID, time.Now())
	require.NoError(t, err)

	assert.Contains(t, tenantRepo.deleted, tn.ID)
}

func TestImportRoster(t *testing.T) {
	rm := testRoom("101", 2, room.StatusVacant)
	svc, _, _, _ := newTestService(rm)

	entries := []RosterEntry{
		{Tenant: CreateParams{FirstName: "Somchai"}, RoomNumber: "101"},
		{Tenant: CreateParams{FirstName: "Malee"}, RoomNumber: "999"},
		{Tenant: CreateParams{FirstName: "Anong"}, RoomNumber: "101"},
	}

	result, err := svc.ImportRoster(context.Background(), entries)
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	require.Len(t, result.Failures, 1)

	failure := result.Failures[0]
	assert.Equal(t, 2, failure.Line)
	assert.Equal(t, "999", failure.RoomNumber)
	assert.ErrorIs(t, failure.Err, room.ErrNotFound)
}

func TestImportRosterFullRoom(t *testing.T) {
	rm := testRoom("101", 1, room.StatusVacant)
	svc, _, _, _ := newTestService(rm)

	entries := []RosterEntry{
		{Tenant: CreateParams{FirstName: "Somchai"}, RoomNumber: "101"},
		{Tenant: CreateParams{FirstName: "Malee"}, RoomNumber: "101"},
	}

	result, err := svc.ImportRoster(context.Background(), entries)
	require.NoError(t, err)

	assert.Len(t, result.Created, 1)
	require.Len(t, result.Failures, 1)
	assert.ErrorIs(t, result.Failures[0].Err, ErrRoomFull)
}
