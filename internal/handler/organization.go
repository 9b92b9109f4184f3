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
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

type organizationRequest struct {
	Name     string  `json:"name"`
	StoreURL string  `json:"storeUrl"`
	StoreKey string  `json:"storeKey"`
	APIKey   *string `json:"apiKey"`
}

// Credential fields are opaque secrets; only presence is validated.
func (req *organizationRequest) validate() error {
	switch {
	case req.Name == "":
		return apperrors.MissingRequired("name")
	case req.StoreURL == "":
		return apperrors.MissingRequired("storeUrl")
	case req.StoreKey == "":
		return apperrors.MissingRequired("storeKey")
	}
	return nil
}

func (req *organizationRequest) params() model.OrganizationParams {
	return model.OrganizationParams{
		Name:     req.Name,
		StoreURL: req.StoreURL,
		StoreKey: req.StoreKey,
		APIKey:   req.APIKey,
	}
}

// GET /api/organizations
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

// GET /api/organizations/{id}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	org, err := h.orgService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// POST /api/organizations
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	org, err := h.orgService.Create(r.Context(), req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditEvent(r, audit.EventOrgCreate, org.ID)
	writeJSON(w, http.StatusCreated, org)
}

// PUT /api/organizations/{id}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	org, err := h.orgService.Update(r.Context(), id, req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditEvent(r, audit.EventOrgUpdate, org.ID)
	writeJSON(w, http.StatusOK, org)
}

// DELETE /api/organizations/{id}
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.orgService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.auditEvent(r, audit.EventOrgDelete, id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *OrganizationHandler) auditEvent(r *http.Request, eventType audit.EventType, id int64) {
	openID := ""
	if user := middleware.GetUser(r.Context()); user != nil {
		openID = user.OpenID
	}
	event := audit.FromRequest(r, eventType, openID)
	event.Details = map[string]interface{}{"organizationId": id}
	audit.Log(r.Context(), event)
}
