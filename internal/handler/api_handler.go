package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/hookscope/hookscope-be/internal/service"
)

// APIHandler serves the dashboard query API: paginated listing, single
// record detail, deletion and the distinct-type listing.
type APIHandler struct {
	service service.IWebhookService
	logger  zerolog.Logger
}

// NewAPIHandler is the constructor for APIHandler.
func NewAPIHandler(s service.IWebhookService, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		service: s,
		logger:  logger,
	}
}

// List handles GET /api/webhooks?page=&limit=&path=&type=.
// Invalid pagination values are coerced to defaults, never rejected.
func (h *APIHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := service.ListParams{
		Path: query.Get("path"),
		Type: query.Get("type"),
	}
	// Atoi failure leaves the zero value; the service applies defaults.
	params.Page, _ = strconv.Atoi(query.Get("page"))
	params.Limit, _ = strconv.Atoi(query.Get("limit"))

	page, err := h.service.ListPaged(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("error fetching webhooks")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch webhooks")
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// Get handles GET /api/webhooks/{id}.
func (h *APIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.webhookID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Webhook not found")
		return
	}

	webhook, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Webhook not found")
			return
		}
		h.logger.Error().Err(err).Int("id", id).Msg("error fetching webhook")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch webhook")
		return
	}

	respondWithJSON(w, http.StatusOK, webhook)
}

// Delete handles DELETE /api/webhooks/{id}.
func (h *APIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.webhookID(r)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Webhook not found")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Webhook not found")
			return
		}
		h.logger.Error().Err(err).Int("id", id).Msg("error deleting webhook")
		respondWithError(w, http.StatusInternalServerError, "Failed to delete webhook")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Webhook deleted",
	})
}

// ListTypes handles GET /api/webhooks/types.
func (h *APIHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("error fetching webhook types")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch webhook types")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"types": types})
}

// webhookID parses the id route param. A non-integer id can never match a
// record, so it is reported as not-found rather than a bad request.
func (h *APIHandler) webhookID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
