package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mams-platform/mams/internal/dashboard/domain"
	"github.com/mams-platform/mams/internal/dashboard/usecase/query"
	directoryhttp "github.com/mams-platform/mams/internal/directory/delivery/http"
	"github.com/mams-platform/mams/pkg/logger"
)

// DashboardHandler handles HTTP requests for the balance dashboard
type DashboardHandler struct {
	computeSummary *query.ComputeSummaryHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(computeSummary *query.ComputeSummaryHandler) *DashboardHandler {
	return &DashboardHandler{computeSummary: computeSummary}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	_, role, callerBase, ok := directoryhttp.CallerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Not authenticated"})
		return
	}

	start, err := parseOptionalDate(r, "start_date")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseOptionalDate(r, "end_date")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid end_date, expected YYYY-MM-DD"})
		return
	}
	if end != nil {
		// Inclusive end of day
		e := end.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}

	summary, err := h.computeSummary.Handle(r.Context(), query.ComputeSummaryQuery{
		BaseID:          parseOptionalID(r, "base_id"),
		EquipmentTypeID: parseOptionalID(r, "equipment_type_id"),
		StartDate:       start,
		EndDate:         end,
		CallerRole:      role,
		CallerBase:      callerBase,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoAssignedBase) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		// Degrade with a generic message rather than leaking query internals
		logger.Error(r.Context()).Err(err).Msg("Failed to compute dashboard summary")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Summary unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: summary})
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/dashboard/summary", directoryhttp.AuthMiddleware(h.GetSummary)).Methods("GET")
}

func parseOptionalID(r *http.Request, name string) *uint {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(id)
	return &value
}

func parseOptionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
