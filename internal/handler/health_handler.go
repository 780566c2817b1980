package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type HealthHandler struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewHealthHandler(db *sql.DB, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error().Err(err).Msg("health check failed: database connection error")
		respondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Service is healthy and database connection is active",
	})
}
