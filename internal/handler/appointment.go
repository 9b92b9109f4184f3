package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atendeai/dashboard-server-go/internal/audit"
	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/middleware"
	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/service"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

type AppointmentHandler struct {
	apptService *service.AppointmentService
}

func NewAppointmentHandler(apptService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService}
}

func (h *AppointmentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)

	return r
}

// GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.apptService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": appts})
}

// POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName  string  `json:"clientName"`
		ClientPhone string  `json:"clientPhone"`
		ClientEmail *string `json:"clientEmail"`
		Service     string  `json:"service"`
		ScheduledAt string  `json:"scheduledAt"`
		Notes       *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid JSON body"))
		return
	}

	switch {
	case req.ClientName == "":
		writeError(w, apperrors.MissingRequired("clientName"))
		return
	case req.ClientPhone == "":
		writeError(w, apperrors.MissingRequired("clientPhone"))
		return
	case req.Service == "":
		writeError(w, apperrors.MissingRequired("service"))
		return
	case req.ScheduledAt == "":
		writeError(w, apperrors.MissingRequired("scheduledAt"))
		return
	}
	if req.ClientEmail != nil && *req.ClientEmail != "" && !util.IsValidEmail(*req.ClientEmail) {
		writeError(w, apperrors.InvalidInput("clientEmail", "not a valid email address"))
		return
	}

	scheduledAt, err := parseDate("scheduledAt", req.ScheduledAt)
	if err != nil {
		writeError(w, err)
		return
	}

	appt, err := h.apptService.Create(r.Context(), model.CreateAppointmentParams{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Service:     req.Service,
		ScheduledAt: scheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditEvent(r, audit.EventAppointmentCreate, appt.ID)
	writeJSON(w, http.StatusCreated, appt)
}

// PATCH /api/appointments/{id}/status
// Any status value from the enum is accepted; there is no transition guard.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid JSON body"))
		return
	}

	if !util.IsValidEnum(req.Status, model.AppointmentStatuses) {
		writeError(w, apperrors.InvalidInput("status", "must be one of pending, confirmed, cancelled, completed"))
		return
	}

	if err := h.apptService.UpdateStatus(r.Context(), id, model.AppointmentStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}

	h.auditEvent(r, audit.EventAppointmentStatus, id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.apptService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.auditEvent(r, audit.EventAppointmentDelete, id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AppointmentHandler) auditEvent(r *http.Request, eventType audit.EventType, id int64) {
	openID := ""
	if user := middleware.GetUser(r.Context()); user != nil {
		openID = user.OpenID
	}
	event := audit.FromRequest(r, eventType, openID)
	event.Details = map[string]interface{}{"appointmentId": id}
	audit.Log(r.Context(), event)
}
