package announcement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anndomain "github.com/kritchanat/dormdesk/internal/announcement"
	"github.com/kritchanat/dormdesk/internal/http/announcement"
)

type fakeAnnouncementRepo struct {
	items []*anndomain.Announcement
}

func (f *fakeAnnouncementRepo) CreateAnnouncement(ctx context.Context, a *anndomain.Announcement) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.items = append(f.items, a)

	return nil
}

func (f *fakeAnnouncementRepo) GetAnnouncement(ctx context.Context, id uuid.UUID) (*anndomain.Announcement, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}

	return nil, anndomain.ErrNotFound
}

func (f *fakeAnnouncementRepo) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*anndomain.Announcement, error) {
	var out []*anndomain.Announcement
	for _, a := range f.items {
		if publishedOnly && !a.Published {
			continue
		}

		out = append(out, a)
	}

	return out, nil
}

func (f *fakeAnnouncementRepo) UpdateAnnouncement(ctx context.Context, a *anndomain.Announcement) error {
	return nil
}

func (f *fakeAnnouncementRepo) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	return nil
}

func TestListAnnouncementsResponseFieldNames(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	require.NoError(t, repo.CreateAnnouncement(context.Background(), &anndomain.Announcement{
		Title:     "Water outage",
		Body:      "Maintenance on Saturday morning.",
		Published: true,
		CreatedBy: uuid.New(),
	}))

	h := announcement.NewHandler(anndomain.NewService(repo))

	r := chi.NewRouter()
	r.Route("/announcements", h.Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/announcements/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)

	assert.Equal(t, "Water outage", body[0]["title"])
	assert.Contains(t, body[0], "created_by")
	assert.Contains(t, body[0], "created_at")
	assert.NotContains(t, body[0], "createdBy")
}
