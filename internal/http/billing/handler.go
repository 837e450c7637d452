package billing

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/auth"
	"github.com/kritchanat/dormdesk/internal/billing"
	"github.com/kritchanat/dormdesk/internal/user"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes are mounted behind RequireAuth. Reads are open to every role
// (tenants see only their own bills); writes are gated in the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/export", h.exportCSV)
	r.Get("/{id}", h.get)
}

func (h *Handler) StaffRoutes(r chi.Router) {
	r.Get("/snapshot", h.snapshot)
	r.Post("/run", h.run)
	r.Patch("/{id}/reading", h.editReading)
	r.Post("/{id}/paid", h.markPaid)
}

// scopeFilter restricts tenant-role callers to their own bills.
func scopeFilter(r *http.Request, filter *billing.ListFilter) {
	claims := auth.ClaimsFrom(r.Context())
	if claims != nil && claims.Role == user.RoleTenant {
		filter.TenantID = claims.TenantID
	}
}

func parseListFilter(r *http.Request) billing.ListFilter {
	filter := billing.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(billing.Status(s))
	}

	if s := r.URL.Query().Get("room_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.RoomID = new(id)
		}
	}

	if s := r.URL.Query().Get("month_from"); s != "" {
		if t, err := time.Parse("2006-01", s); err == nil {
			filter.MonthFrom = new(t)
		}
	}

	if s := r.URL.Query().Get("month_to"); s != "" {
		if t, err := time.Parse("2006-01", s); err == nil {
			filter.MonthTo = new(t)
		}
	}

	return filter
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	scopeFilter(r, &filter)

	recs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(recs, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "billing record not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	claims := auth.ClaimsFrom(r.Context())
	if claims != nil && claims.Role == user.RoleTenant {
		if claims.TenantID == nil || rec.TenantID == nil || *rec.TenantID != *claims.TenantID {
			http.Error(w, "billing record not found", http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type snapshotResponse struct {
	RoomID          uuid.UUID  `json:"room_id"`
	RoomNumber      string     `json:"room_number"`
	OccupantCount   int        `json:"occupant_count"`
	PreviousReading int64      `json:"previous_reading"`
	MonthlyRent     *int64     `json:"monthly_rent,omitempty"`
	TenantID        *uuid.UUID `json:"tenant_id,omitempty"`
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]snapshotResponse, 0, len(rooms))
	for _, rm := range rooms {
		resp = append(resp, snapshotResponse{
			RoomID:          rm.RoomID,
			RoomNumber:      rm.RoomNumber,
			OccupantCount:   rm.OccupantCount,
			PreviousReading: rm.PreviousReading,
			MonthlyRent:     rm.MonthlyRent,
			TenantID:        rm.TenantID,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type runRequest struct {
	Month    string              `json:"month"`
	DueDate  *time.Time          `json:"due_date,omitempty"`
	Readings map[uuid.UUID]int64 `json:"readings"`
}

type failureResponse struct {
	RoomID     uuid.UUID `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	Reason     string    `json:"reason"`
}

type runResponse struct {
	Created  []billResponse    `json:"created"`
	Failures []failureResponse `json:"failures"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		http.Error(w, "month must be in YYYY-MM format", http.StatusBadRequest)
		return
	}

	params := billing.RunParams{
		Month:    month,
		Readings: req.Readings,
	}
	if req.DueDate != nil {
		params.DueDate = *req.DueDate
	}

	result, err := h.svc.Run(r.Context(), params)
	if err != nil {
		var readingErr *billing.ReadingError
		if errors.As(err, &readingErr) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	now := time.Now()

	resp := runResponse{
		Created:  toResponseList(result.Created, now),
		Failures: make([]failureResponse, 0, len(result.Failures)),
	}

	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, failureResponse{
			RoomID:     f.RoomID,
			RoomNumber: f.RoomNumber,
			Reason:     f.Err.Error(),
		})
	}

	status := http.StatusCreated
	if !result.AllSucceeded() {
		status = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type editReadingRequest struct {
	MeterReading int64 `json:"meter_reading"`
}

func (h *Handler) editReading(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req editReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	claims := auth.ClaimsFrom(r.Context())
	if claims == nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	editedBy, err := claims.UserID()
	if err != nil {
		http.Error(w, "invalid token subject", http.StatusUnauthorized)
		return
	}

	rec, err := h.svc.EditReading(r.Context(), id, req.MeterReading, editedBy)
	if err != nil {
		var readingErr *billing.ReadingError
		switch {
		case errors.Is(err, billing.ErrNotFound):
			http.Error(w, "billing record not found", http.StatusNotFound)
		case errors.As(err, &readingErr):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type markPaidRequest struct {
	PaidDate *time.Time `json:"paid_date,omitempty"`
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req markPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	paidDate := time.Now()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}

	if err := h.svc.MarkPaid(r.Context(), id, paidDate); err != nil {
		switch {
		case errors.Is(err, billing.ErrNotFound):
			http.Error(w, "billing record not found", http.StatusNotFound)
		case errors.Is(err, billing.ErrAlreadyPaid):
			http.Error(w, "billing record is already paid", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// exportCSV downloads the filtered bills as a CSV, amounts in baht.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	scopeFilter(r, &filter)

	recs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"bills_%s.csv\"", time.Now().Format("20060102")))

	now := time.Now()

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"receipt_number", "room_number", "month", "room_rent",
		"water_units", "water_cost", "electricity_units", "electricity_cost",
		"total", "due_date", "status", "paid_date",
	})

	for _, rec := range recs {
		paidDate := ""
		if rec.PaidDate != nil {
			paidDate = rec.PaidDate.Format(time.DateOnly)
		}

		_ = cw.Write([]string{
			rec.ReceiptNumber,
			rec.RoomNumber,
			rec.Month.Format("2006-01"),
			formatBaht(rec.RoomRent),
			strconv.FormatInt(rec.WaterUnits, 10),
			formatBaht(rec.WaterCost),
			strconv.FormatInt(rec.ElectricityUnits, 10),
			formatBaht(rec.ElectricityCost),
			formatBaht(rec.Total),
			rec.DueDate.Format(time.DateOnly),
			string(rec.EffectiveStatus(now)),
			paidDate,
		})
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		slog.Error("failed to write csv", "error", err)
	}
}

func formatBaht(satang int64) string {
	return fmt.Sprintf("%d.%02d", satang/100, satang%100)
}
