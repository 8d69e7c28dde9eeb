package apperror

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Handler is an HTTP handler that reports failure by returning an error instead
// of writing the error response itself. ServeHTTP is the single place where a
// returned error is turned into a response, so a handler stops at its first
// failure and nothing else is written.
type Handler func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP implements http.Handler.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		WriteError(w, r, err)
	}
}

// WriteJSON serializes `data` to JSON and writes it with the given status.
// A nil `data` writes only the status line and headers.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; the best we can do is leave a trace.
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError normalizes any error into the uniform error body.
// Errors that are not *AppError are treated as unexpected and become a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("unexpected error", err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(appErr).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	// A missing resource is reported by status alone.
	if appErr.Type == NotFoundError {
		WriteJSON(w, status, nil)
		return
	}
	WriteJSON(w, status, appErr.ToResponse())
}
