package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comparables-api/internal/service"
	"github.com/sells-group/comparables-api/pkg/searx"
)

type errorResponse struct {
	Error       string    `json:"error"`
	Details     []string  `json:"details,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeValidationError(w http.ResponseWriter, problems []string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:     "invalid request",
		Details:   problems,
		Timestamp: time.Now().UTC(),
	})
}

// writeError maps the pipeline error taxonomy onto HTTP statuses:
// deny-listed names are a client error, "no data" is 404 with
// suggestions, a missing backend configuration is 503, backend and
// timeout failures are 502, auth failures are 500.
func writeError(w http.ResponseWriter, err error) {
	now := time.Now().UTC()

	var noData *service.NoDataError
	switch {
	case eris.Is(err, service.ErrSuspiciousName):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "company name looks like a placeholder",
			Timestamp: now,
		})
	case eris.As(err, &noData):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:       noData.Error(),
			Suggestions: noData.Suggestions,
			Timestamp:   now,
		})
	case eris.Is(err, searx.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:     "search backend not configured",
			Timestamp: now,
		})
	default:
		status := http.StatusInternalServerError

		var timeout *searx.TimeoutError
		var backend *searx.BackendError
		if eris.As(err, &timeout) || eris.As(err, &backend) {
			status = http.StatusBadGateway
		}

		zap.L().Error("server: request failed", zap.Error(err))
		writeJSON(w, status, errorResponse{
			Error:     err.Error(),
			Timestamp: now,
		})
	}
}
