package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/markdave123-py/Sumora/internal/config"
	"github.com/markdave123-py/Sumora/internal/core"
	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
	"github.com/markdave123-py/Sumora/internal/core/summarize"
	"github.com/markdave123-py/Sumora/internal/services"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses; anything unrecognised
// gets fallback.
func writeError(w http.ResponseWriter, err error, fallback int) {
	writeJSON(w, statusFor(err, fallback), errorBody{Error: err.Error()})
}

func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, ingest.ErrEmptyInput),
		errors.Is(err, summarize.ErrUnknownMode),
		errors.Is(err, services.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, ingest.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingest.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrPersistenceDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, config.ErrProviderNotConfigured),
		errors.Is(err, ingest.ErrQueueFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return fallback
}
