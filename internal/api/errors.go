package api

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yanizio/backend-api/internal/metrics"
)

type errorResponse struct {
	Error       string `json:"error"`
	Message     string `json:"message,omitempty"`
	Environment string `json:"environment"`
	Path        string `json:"path,omitempty"`
}

// writeJSON encodes v with status.  Encoding errors after the header is
// written can only be logged by the caller's access log.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:       msg,
		Environment: h.state.Env.Name,
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:       "Not Found",
		Message:     "The requested API endpoint does not exist",
		Environment: h.state.Env.Name,
		Path:        r.URL.Path,
	})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:       "Method Not Allowed",
		Message:     "The method is not allowed for the requested URL",
		Environment: h.state.Env.Name,
		Path:        r.URL.Path,
	})
}

// recoverer turns a handler panic into the generic 500 body.  The panic
// value and stack go to the log only.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			metrics.HandlerPanicsTotal.Inc()
			h.log.Errorw("internal server error",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", chimw.GetReqID(r.Context()),
				"stack", string(debug.Stack()),
			)

			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:       "Internal Server Error",
				Message:     "An unexpected error occurred",
				Environment: h.state.Env.Name,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
