package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/hookscope/hookscope-be/internal/model"
	"github.com/hookscope/hookscope-be/internal/service"
)

// maxBodySize caps how much of an inbound body gets read. Larger bodies are
// refused by the transport, not by the capture path.
const maxBodySize = 10 * 1024 * 1024 // 10 MB

// defaultPath substitutes for an empty sub-path under the mount prefix.
const defaultPath = "default"

// WebhookHandler accepts any inbound request under /webhook/ and records it.
// Capture must succeed for any method, content type or body shape; the only
// failure mode is storage unavailability.
type WebhookHandler struct {
	service service.IWebhookService
	logger  zerolog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler.
func NewWebhookHandler(s service.IWebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: s,
		logger:  logger,
	}
}

// Capture normalizes the inbound request and writes it through the service.
func (h *WebhookHandler) Capture(w http.ResponseWriter, r *http.Request) {
	subPath := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if subPath == "" {
		subPath = defaultPath
	}

	capture := &model.Capture{
		Path:        subPath,
		Method:      r.Method,
		Headers:     flattenHeaders(r.Header),
		Body:        readBody(r),
		QueryParams: flattenQuery(r.URL.Query()),
		SourceIP:    sourceIP(r),
	}

	webhook, err := h.service.Ingest(r.Context(), capture)
	if err != nil {
		h.logger.Error().Err(err).Str("path", subPath).Msg("failed to store webhook")
		respondWithJSON(w, http.StatusInternalServerError, model.IngestResponse{
			Success: false,
			Message: "Failed to store webhook",
		})
		return
	}

	var label string
	if webhook.WebhookType != nil {
		label = *webhook.WebhookType
	}
	respondWithJSON(w, http.StatusOK, model.IngestResponse{
		Success:   true,
		Message:   "Webhook received",
		ID:        webhook.ID,
		Path:      webhook.Path,
		Type:      label,
		Timestamp: &webhook.CreatedAt,
	})
}

// readBody normalizes the request body into a payload. JSON content becomes
// a structured mapping, form data becomes a mapping of its fields, anything
// else is kept as text. Nothing is ever rejected: unparseable JSON falls
// back to text, unreadable bodies to absent.
func readBody(r *http.Request) model.Payload {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil || len(raw) == 0 {
		return model.AbsentPayload()
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
			return model.ObjectPayload(obj)
		}
		return model.TextPayload(string(raw))
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return model.TextPayload(string(raw))
		}
		return model.ObjectPayload(flattenQuery(values))
	default:
		return model.TextPayload(string(raw))
	}
}

// sourceIP resolves the client address. Deployments behind a reverse proxy
// report the true client only in X-Forwarded-For, so that wins.
func sourceIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}
	return "unknown"
}

// flattenHeaders lowercases header names and joins repeated values, the way
// most webhook payload dumps present them.
func flattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for key, values := range header {
		out[strings.ToLower(key)] = strings.Join(values, ", ")
	}
	return out
}

// flattenQuery keeps single-valued params as strings and repeated ones as
// string slices.
func flattenQuery(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			out[key] = vals[0]
		} else {
			out[key] = vals
		}
	}
	return out
}
