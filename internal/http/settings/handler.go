package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/auth"
	"github.com/kritchanat/dormdesk/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.save)
}

type settingsPayload struct {
	WaterRate       int64      `json:"water_rate"`
	ElectricityRate int64      `json:"electricity_rate"`
	DepositRate     int64      `json:"deposit_rate"`
	LateFee         int64      `json:"late_fee"`
	FloorCount      int        `json:"floor_count"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	UpdatedBy       *uuid.UUID `json:"updated_by,omitempty"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			http.Error(w, "system settings not configured", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(settingsPayload{
		WaterRate:       st.WaterRate,
		ElectricityRate: st.ElectricityRate,
		DepositRate:     st.DepositRate,
		LateFee:         st.LateFee,
		FloorCount:      st.FloorCount,
		UpdatedAt:       st.UpdatedAt,
		UpdatedBy:       st.UpdatedBy,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.WaterRate < 0 || req.ElectricityRate < 0 || req.DepositRate < 0 || req.LateFee < 0 {
		http.Error(w, "rates must not be negative", http.StatusBadRequest)
		return
	}

	claims := auth.ClaimsFrom(r.Context())
	if claims == nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	updatedBy, err := claims.UserID()
	if err != nil {
		http.Error(w, "invalid token subject", http.StatusUnauthorized)
		return
	}

	st := &settings.Settings{
		WaterRate:       req.WaterRate,
		ElectricityRate: req.ElectricityRate,
		DepositRate:     req.DepositRate,
		LateFee:         req.LateFee,
		FloorCount:      req.FloorCount,
	}

	if err := h.svc.Save(r.Context(), st, updatedBy); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
