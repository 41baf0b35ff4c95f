package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fernandoagad/rasma-sub000/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP statuses. Storage failures
// stay opaque; the detail lives in the log, not the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidPeriod), errors.Is(err, core.ErrInvalidAmount):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"path", r.URL.Path,
			"error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// parsePeriod reads the period query parameters ("period" or its
// alias "type", plus "year" and "value"), defaulting to the current
// calendar month. Validation happens in the service.
func parsePeriod(r *http.Request) (core.Period, error) {
	q := r.URL.Query()

	now := time.Now()
	p := core.Period{
		Type:  core.PeriodMonth,
		Year:  now.Year(),
		Value: int(now.Month()),
	}

	t := q.Get("period")
	if t == "" {
		t = q.Get("type")
	}
	if t != "" {
		p.Type = core.PeriodType(t)
		// An explicit non-month type defaults its value instead of
		// inheriting the current month number.
		if q.Get("value") == "" {
			p.Value = 1
		}
	}
	if y := q.Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return core.Period{}, core.ErrInvalidPeriod
		}
		p.Year = n
	}
	if v := q.Get("value"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return core.Period{}, core.ErrInvalidPeriod
		}
		p.Value = n
	}

	return p, nil
}

// authorizeAdmin checks the bearer token. An empty configured token
// disables the admin surface entirely.
func (s *Server) authorizeAdmin(r *http.Request) error {
	if s.adminToken == "" {
		return core.ErrUnauthorized
	}
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return core.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
		return core.ErrUnauthorized
	}
	return nil
}
