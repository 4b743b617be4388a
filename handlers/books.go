// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avelis/clubvote/metadata"
	"github.com/avelis/clubvote/middleware"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

type BookHandler struct {
	store      *store.Store
	lookup     metadata.Lookup
	summarizer metadata.Summarizer
}

func NewBookHandler(s *store.Store, lookup metadata.Lookup, summarizer metadata.Summarizer) *BookHandler {
	return &BookHandler{store: s, lookup: lookup, summarizer: summarizer}
}

// CreateBook handles POST /books. Resubmitting a known ISBN returns the
// existing book instead of a duplicate.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	// An ISBN can stand in for a title; metadata fills the rest.
	if req.ISBN != nil {
		h.enrich(r, &req)
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	book, created, err := h.store.EnsureBook(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if !created {
		middleware.JSONResponse(w, http.StatusOK, book)
		return
	}

	h.summarize(r, &book)

	slog.Info("book created", "book_id", book.ID, "title", book.Title)
	middleware.JSONResponse(w, http.StatusCreated, book)
}

// summarize backfills the summary field on a fresh book. Best-effort.
func (h *BookHandler) summarize(r *http.Request, book *models.Book) {
	if book.Summary != nil {
		return
	}
	var description string
	if book.Description != nil {
		description = *book.Description
	}
	summary, err := h.summarizer.Summarize(r.Context(), book.Title, description)
	if errors.Is(err, metadata.ErrNoSummary) {
		return
	}
	if err != nil {
		slog.Warn("summarizer failed", "book_id", book.ID, "error", err)
		return
	}
	if err := h.store.UpdateBookSummary(r.Context(), book.ID, nil, &summary); err != nil {
		slog.Warn("failed to store summary", "book_id", book.ID, "error", err)
		return
	}
	book.Summary = &summary
}

// enrich fills missing fields from the metadata source. Best-effort: a miss
// or outage leaves the request as submitted.
func (h *BookHandler) enrich(r *http.Request, req *models.CreateBookRequest) {
	info, err := h.lookup.ByISBN(r.Context(), *req.ISBN)
	if errors.Is(err, metadata.ErrNoMatch) {
		return
	}
	if err != nil {
		slog.Warn("metadata lookup failed", "isbn", *req.ISBN, "error", err)
		return
	}

	if req.Title == "" {
		req.Title = info.Title
	}
	if req.Description == nil && info.Description != "" {
		req.Description = &info.Description
	}
	if req.Length == nil && info.PageCount > 0 {
		req.Length = &info.PageCount
	}
}

// GetBook handles GET /books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.store.GetBook(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, book)
}
