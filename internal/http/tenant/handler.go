package tenant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/occupancy"
	"github.com/kritchanat/dormdesk/internal/room"
	"github.com/kritchanat/dormdesk/internal/tenant"
	"github.com/kritchanat/dormdesk/internal/user"
)

type Handler struct {
	svc   *tenant.Service
	stays *occupancy.Service
	users *user.Service
}

func NewHandler(svc *tenant.Service, stays *occupancy.Service, users *user.Service) *Handler {
	return &Handler{svc: svc, stays: stays, users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/history", h.history)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/checkin", h.checkIn)
	r.Post("/{id}/checkout", h.checkOut)
	r.Delete("/{id}", h.delete)
}

type createTenantRequest struct {
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	RoomID           *uuid.UUID `json:"room_id,omitempty"`
	CheckInDate      *time.Time `json:"check_in_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FirstName == "" {
		http.Error(w, "first_name is required", http.StatusBadRequest)
		return
	}

	params := tenant.CreateParams{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	}

	var (
		t   *tenant.Tenant
		err error
	)

	if req.RoomID != nil {
		checkIn := time.Now()
		if req.CheckInDate != nil {
			checkIn = *req.CheckInDate
		}

		t, err = h.svc.CreateAndCheckIn(r.Context(), params, *req.RoomID, checkIn)
	} else {
		t, err = h.svc.Create(r.Context(), params)
	}

	if err != nil {
		writeCheckInError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeCheckInError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	case errors.Is(err, tenant.ErrRoomFull):
		http.Error(w, "room is at capacity", http.StatusConflict)
	case errors.Is(err, tenant.ErrRoomUnavailable):
		http.Error(w, "room is under maintenance", http.StatusConflict)
	case errors.Is(err, tenant.ErrAlreadyCheckedIn):
		http.Error(w, "tenant already has a current stay", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := tenant.ListFilter{
		Search: r.URL.Query().Get("search"),
	}

	if s := r.URL.Query().Get("room_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.RoomID = new(id)
		}
	}

	tenants, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(tenants)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			http.Error(w, "tenant not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type stayResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"room_id"`
	CheckInDate  time.Time  `json:"check_in_date"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`
	IsCurrent    bool       `json:"is_current"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	stays, err := h.stays.History(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]stayResponse, 0, len(stays))
	for _, s := range stays {
		resp = append(resp, stayResponse{
			ID:           s.ID,
			RoomID:       s.RoomID,
			CheckInDate:  s.CheckInDate,
			CheckOutDate: s.CheckOutDate,
			IsCurrent:    s.IsCurrent,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTenantRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			http.Error(w, "tenant not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.FirstName != nil {
		t.FirstName = *req.FirstName
	}

	if req.LastName != nil {
		t.LastName = *req.LastName
	}

	if req.Email != nil {
		t.Email = *req.Email
	}

	if req.Phone != nil {
		t.Phone = *req.Phone
	}

	if req.Address != nil {
		t.Address = *req.Address
	}

	if req.EmergencyContact != nil {
		t.EmergencyContact = *req.EmergencyContact
	}

	if err := h.svc.Update(r.Context(), t); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type checkInRequest struct {
	RoomID      uuid.UUID  `json:"room_id"`
	CheckInDate *time.Time `json:"check_in_date,omitempty"`
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkIn := time.Now()
	if req.CheckInDate != nil {
		checkIn = *req.CheckInDate
	}

	if err := h.svc.CheckIn(r.Context(), id, req.RoomID, checkIn); err != nil {
		writeCheckInError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type checkOutRequest struct {
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`
}

func (h *Handler) checkOut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkOut := time.Now()
	if req.CheckOutDate != nil {
		checkOut = *req.CheckOutDate
	}

	if err := h.svc.CheckOut(r.Context(), id, checkOut); err != nil {
		if errors.Is(err, occupancy.ErrNoCurrentStay) {
			http.Error(w, "tenant has no current stay", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// delete removes the tenant: any current stay is closed, the record is
// soft-deleted, and a linked login account is orphaned rather than removed.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Remove(r.Context(), id, time.Now()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.users.UnlinkTenant(r.Context(), id); err != nil {
		slog.Error("failed to unlink tenant account", "tenant_id", id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
