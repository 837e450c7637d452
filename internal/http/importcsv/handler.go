package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/importer"
	"github.com/kritchanat/dormdesk/internal/tenant"
)

type Handler struct {
	importSvc *importer.Service
	tenantSvc *tenant.Service
}

func NewHandler(importSvc *importer.Service, tenantSvc *tenant.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		tenantSvc: tenantSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type tenantResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type failureResponse struct {
	Line       int    `json:"line"`
	RoomNumber string `json:"room_number"`
	Reason     string `json:"reason"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Tenants  []tenantResponse  `json:"tenants"`
	Failures []failureResponse `json:"failures"`
}

// importCSV accepts a multipart roster upload, parses it and onboards the
// rows best-effort. A partial import answers 207 with per-line failures.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceRoster
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	entries, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.tenantSvc.ImportRoster(r.Context(), entries)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := importResponse{
		Imported: len(result.Created),
		Tenants:  make([]tenantResponse, 0, len(result.Created)),
		Failures: make([]failureResponse, 0, len(result.Failures)),
	}

	for _, t := range result.Created {
		resp.Tenants = append(resp.Tenants, tenantResponse{
			ID:        t.ID,
			FirstName: t.FirstName,
			LastName:  t.LastName,
			Phone:     t.Phone,
			Email:     t.Email,
			CreatedAt: t.CreatedAt,
		})
	}

	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, failureResponse{
			Line:       f.Line,
			RoomNumber: f.RoomNumber,
			Reason:     f.Err.Error(),
		})
	}

	status := http.StatusCreated
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
