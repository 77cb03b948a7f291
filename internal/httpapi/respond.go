package httpapi

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"businessCard/internal/auth"
)

// maxBodyBytes bounds request bodies; every payload here is a small JSON object.
const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid JSON body")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// internalError logs err with the request id and answers with a generic 500;
// nothing about the cause reaches the caller.
func internalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	attrs := []any{
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	}
	if p, perr := auth.RequirePrincipal(r.Context()); perr == nil {
		attrs = append(attrs, slog.String("principal", p.Name))
	}
	logger.ErrorContext(r.Context(), "request failed", attrs...)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody reads a JSON object into v. An empty body leaves v untouched,
// like an empty object.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errInvalidBody
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errInvalidBody
	}
	return nil
}
