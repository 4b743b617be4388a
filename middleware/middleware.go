// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

// WithLogging wraps a handler with request logging. Each request gets a
// request id so its start and completion lines correlate.
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		slog.Info("request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		next(w, r)

		duration := time.Since(start)
		slog.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error body with a single detail string
func ErrorResponse(w http.ResponseWriter, statusCode int, detail string) {
	JSONResponse(w, statusCode, models.ErrorResponse{Detail: detail})
}

// WriteError maps a domain error onto the wire. Every handler funnels its
// store and election errors through here so each error class has exactly one
// status code.
func WriteError(w http.ResponseWriter, err error) {
	var capErr *election.WeightCapError
	var entryErr *election.InvalidEntryError

	switch {
	case errors.Is(err, store.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, election.ErrNoOpenElection):
		ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrElectionAlreadyOpen),
		errors.Is(err, election.ErrElectionClosed),
		errors.Is(err, store.ErrNominationExists),
		errors.Is(err, election.ErrNoEligibleCandidates):
		ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotNominator):
		ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.As(err, &capErr), errors.As(err, &entryErr):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// CORS middleware allows cross-origin requests from the club dashboard
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Token")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
