package staff_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritchanat/dormdesk/internal/http/staff"
	staffdomain "github.com/kritchanat/dormdesk/internal/staff"
)

type fakeStaffRepo struct {
	members map[uuid.UUID]*staffdomain.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: make(map[uuid.UUID]*staffdomain.Staff)}
}

func (f *fakeStaffRepo) CreateStaff(ctx context.Context, m *staffdomain.Staff) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	f.members[m.ID] = m

	return nil
}

func (f *fakeStaffRepo) GetStaff(ctx context.Context, id uuid.UUID) (*staffdomain.Staff, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, staffdomain.ErrNotFound
	}

	return m, nil
}

func (f *fakeStaffRepo) ListStaff(ctx context.Context) ([]*staffdomain.Staff, error) {
	var members []*staffdomain.Staff
	for _, m := range f.members {
		members = append(members, m)
	}

	return members, nil
}

func (f *fakeStaffRepo) UpdateStaff(ctx context.Context, m *staffdomain.Staff) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeStaffRepo) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	delete(f.members, id)
	return nil
}

func newTestRouter() (chi.Router, *fakeStaffRepo) {
	repo := newFakeStaffRepo()
	h := staff.NewHandler(staffdomain.NewService(repo))

	r := chi.NewRouter()
	r.Route("/staff", h.Routes)

	return r, repo
}

func TestGetStaffResponseFieldNames(t *testing.T) {
	router, repo := newTestRouter()

	m := &staffdomain.Staff{
		FirstName: "Somsri",
		LastName:  "Warden",
		Position:  "manager",
		Salary:    1500000,
		HiredAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateStaff(context.Background(), m))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/staff/"+m.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Responses use snake_case keys like every other endpoint.
	assert.Equal(t, "Somsri", body["first_name"])
	assert.Equal(t, "Warden", body["last_name"])
	assert.Contains(t, body, "hired_at")
	assert.NotContains(t, body, "firstName")
	assert.NotContains(t, body, "hiredAt")
}

func TestCreateStaff(t *testing.T) {
	router, repo := newTestRouter()

	payload := `{"first_name":"Anan","last_name":"Clerk","position":"front desk","salary":900000,"hired_at":"2026-01-15T00:00:00Z"}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/staff/", strings.NewReader(payload)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Anan", body["first_name"])

	require.Len(t, repo.members, 1)
	for _, m := range repo.members {
		assert.Equal(t, int64(900000), m.Salary)
	}
}
