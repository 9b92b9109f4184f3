package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/service"
)

type MetricsHandler struct {
	metricsService *service.MetricsService
}

func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", h.Summary)
	r.Get("/per-day", h.PerDay)

	return r
}

// GET /api/metrics/summary?startDate&endDate
func (h *MetricsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseOptionalDate("startDate", q.Get("startDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseOptionalDate("endDate", q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}

	metrics, err := h.metricsService.Summary(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// GET /api/metrics/per-day?startDate&endDate (both required)
func (h *MetricsHandler) PerDay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("startDate") == "" {
		writeError(w, apperrors.MissingRequired("startDate"))
		return
	}
	if q.Get("endDate") == "" {
		writeError(w, apperrors.MissingRequired("endDate"))
		return
	}

	from, err := parseDate("startDate", q.Get("startDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseDate("endDate", q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}

	series, err := h.metricsService.PerDay(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"perDay": series})
}
