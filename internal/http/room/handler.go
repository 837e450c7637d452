package room

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/room"
)

type Handler struct {
	svc *room.Service
}

func NewHandler(svc *room.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type roomResponse struct {
	ID                 uuid.UUID   `json:"id"`
	RoomNumber         string      `json:"room_number"`
	Floor              int         `json:"floor"`
	Capacity           int         `json:"capacity"`
	RoomType           string      `json:"room_type"`
	Status             room.Status `json:"status"`
	LatestMeterReading int64       `json:"latest_meter_reading"`
	MonthlyRent        *int64      `json:"monthly_rent,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(r *room.Room) roomResponse {
	return roomResponse{
		ID:                 r.ID,
		RoomNumber:         r.RoomNumber,
		Floor:              r.Floor,
		Capacity:           r.Capacity,
		RoomType:           r.RoomType,
		Status:             r.Status,
		LatestMeterReading: r.LatestMeterReading,
		MonthlyRent:        r.MonthlyRent,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toResponseList(rooms []*room.Room) []roomResponse {
	resp := make([]roomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = toResponse(r)
	}

	return resp
}

type createRoomRequest struct {
	RoomNumber  string `json:"room_number"`
	Floor       int    `json:"floor"`
	Capacity    int    `json:"capacity"`
	RoomType    string `json:"room_type"`
	MonthlyRent *int64 `json:"monthly_rent,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.RoomNumber == "" {
		http.Error(w, "room_number is required", http.StatusBadRequest)
		return
	}

	if req.Capacity <= 0 {
		http.Error(w, "capacity must be positive", http.StatusBadRequest)
		return
	}

	rm, err := h.svc.Create(r.Context(), room.CreateParams{
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Capacity:    req.Capacity,
		RoomType:    req.RoomType,
		MonthlyRent: req.MonthlyRent,
	})
	if err != nil {
		if errors.Is(err, room.ErrDuplicateNumber) {
			http.Error(w, "room number already exists", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rm)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := room.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(room.Status(s))
	}

	if s := r.URL.Query().Get("floor"); s != "" {
		if floor, err := strconv.Atoi(s); err == nil {
			filter.Floor = new(floor)
		}
	}

	rooms, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(rooms)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rm, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rm)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRoomRequest struct {
	RoomNumber  *string `json:"room_number,omitempty"`
	Floor       *int    `json:"floor,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	RoomType    *string `json:"room_type,omitempty"`
	MonthlyRent *int64  `json:"monthly_rent,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rm, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.RoomNumber != nil {
		rm.RoomNumber = *req.RoomNumber
	}

	if req.Floor != nil {
		rm.Floor = *req.Floor
	}

	if req.Capacity != nil {
		rm.Capacity = *req.Capacity
	}

	if req.RoomType != nil {
		rm.RoomType = *req.RoomType
	}

	if req.MonthlyRent != nil {
		rm.MonthlyRent = req.MonthlyRent
	}

	if err := h.svc.Update(r.Context(), rm); err != nil {
		if errors.Is(err, room.ErrDuplicateNumber) {
			http.Error(w, "room number already exists", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rm)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status room.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Status {
	case room.StatusVacant, room.StatusOccupied, room.StatusMaintenance:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetStatus(r.Context(), id, req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
