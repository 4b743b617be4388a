// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/avelis/clubvote/middleware"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

type NominationHandler struct {
	store *store.Store
}

func NewNominationHandler(s *store.Store) *NominationHandler {
	return &NominationHandler{store: s}
}

// CreateNomination handles POST /nominations
func (h *NominationHandler) CreateNomination(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNominationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.BookID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "book_id is required")
		return
	}
	if req.NominatorID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominator_id is required")
		return
	}

	// The book must exist before it can be nominated.
	if _, err := h.store.GetBook(r.Context(), req.BookID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	// The pool is frozen while a ballot is live.
	if _, err := h.store.GetOpenElection(r.Context()); err == nil {
		middleware.ErrorResponse(w, http.StatusConflict,
			"nominations are closed while an election is open")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, err)
		return
	}

	nom, err := h.store.CreateNomination(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("nomination created",
		"nomination_id", nom.ID, "book_id", nom.BookID, "nominator_id", nom.NominatorID)
	middleware.JSONResponse(w, http.StatusCreated, nom)
}

// UpdateNomination handles PATCH /nominations/{id}
func (h *NominationHandler) UpdateNomination(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid nomination id")
		return
	}

	var req models.UpdateNominationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Reactions == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reactions is required")
		return
	}

	if err := h.store.UpdateNominationReactions(r.Context(), id, *req.Reactions); err != nil {
		middleware.WriteError(w, err)
		return
	}

	nom, err := h.store.GetNomination(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, nom)
}

// CancelNomination handles DELETE /nominations/{id}
func (h *NominationHandler) CancelNomination(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid nomination id")
		return
	}

	var req models.CancelNominationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.NominatorID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nominator_id is required")
		return
	}

	nom, err := h.store.GetNomination(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	// A nomination that made it onto a live ballot stays until the votes
	// are counted.
	if e, err := h.store.GetOpenElection(r.Context()); err == nil {
		if slices.Contains(e.Ballot, nom.BookID) {
			middleware.ErrorResponse(w, http.StatusConflict,
				"nomination is on the current ballot")
			return
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.CancelNomination(r.Context(), id, req.NominatorID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("nomination cancelled", "nomination_id", id)
	w.WriteHeader(http.StatusNoContent)
}
