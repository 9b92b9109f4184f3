package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/service"
)

type ConversationHandler struct {
	convService *service.ConversationService
}

func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

func (h *ConversationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}/messages", h.Messages)

	return r
}

// GET /api/conversations?startDate&endDate&search
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
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

	filter := model.ConversationFilter{
		From:   from,
		To:     to,
		Search: q.Get("search"),
	}

	convs, err := h.convService.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": convs})
}

// GET /api/conversations/{id}/messages
func (h *ConversationHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	msgs, err := h.convService.Messages(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
