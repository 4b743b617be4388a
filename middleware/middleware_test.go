// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"id":123}`},
		{"BadRequest", http.StatusBadRequest, `{"detail":"bad request"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/api/test", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body %q, got %q", tc.body, w.Body.String())
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]int{"id": 7})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var body map[string]int
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["id"] != 7 {
		t.Errorf("Expected id 7, got %d", body["id"])
	}
}

func TestErrorResponseShape(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusConflict, "an election is already open")

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Detail != "an election is already open" {
		t.Errorf("Expected detail to carry the message, got %q", resp.Detail)
	}
}

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrNotFound), http.StatusNotFound},
		{"no open election", election.ErrNoOpenElection, http.StatusNotFound},
		{"already open", store.ErrElectionAlreadyOpen, http.StatusConflict},
		{"already closed", election.ErrElectionClosed, http.StatusConflict},
		{"duplicate nomination", store.ErrNominationExists, http.StatusConflict},
		{"empty ballot", election.ErrNoEligibleCandidates, http.StatusConflict},
		{"not the nominator", store.ErrNotNominator, http.StatusForbidden},
		{"over cap", &election.WeightCapError{Cost: 25, Cap: 22}, http.StatusBadRequest},
		{"bad entry", &election.InvalidEntryError{BookID: 9, Reason: "not on the ballot"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)
			if w.Code != tc.expected {
				t.Errorf("Expected status %d, got %d", tc.expected, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Detail == "" {
				t.Error("Expected a detail message")
			}
		})
	}
}

func TestWriteErrorHidesInternals(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: connection refused at 10.0.0.3"))

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Detail != "internal error" {
		t.Errorf("Internal errors must not leak, got %q", resp.Detail)
	}
}

func TestParseJSONBody(t *testing.T) {
	body := bytes.NewBufferString(`{"title": "Solaris"}`)
	req := httptest.NewRequest("POST", "/books", body)

	var parsed models.CreateBookRequest
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Title != "Solaris" {
		t.Errorf("Expected Solaris, got %q", parsed.Title)
	}
}

func TestParseJSONBodyInvalid(t *testing.T) {
	body := bytes.NewBufferString(`not json`)
	req := httptest.NewRequest("POST", "/books", body)

	var parsed models.CreateBookRequest
	if err := ParseJSONBody(req, &parsed); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/votes", nil)
	req.Header.Set("Origin", "https://club.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://club.example" {
		t.Errorf("Expected origin echo, got %q", got)
	}
}
