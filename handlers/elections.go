// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/avelis/clubvote/auth"
	"github.com/avelis/clubvote/ballot"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/middleware"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

type ElectionHandler struct {
	store   *store.Store
	manager *election.Manager
	builder *ballot.Builder
	cfg     cliparse.Config
}

func NewElectionHandler(s *store.Store, m *election.Manager, b *ballot.Builder, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{store: s, manager: m, builder: b, cfg: cfg}
}

// OpenElection handles POST /elections (admin)
func (h *ElectionHandler) OpenElection(w http.ResponseWriter, r *http.Request) {
	if err := auth.CheckRequest(r, h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid admin token")
		return
	}

	var req models.OpenElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.OpenerID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "opener_id is required")
		return
	}

	resp, err := h.manager.Open(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// CurrentElection handles GET /elections/current
func (h *ElectionHandler) CurrentElection(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetOpenElection(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// BallotPreview handles GET /elections/ballot-preview. Shows what the ballot
// would look like if an election opened right now, without opening one.
// An optional ?limit= overrides the configured ballot size.
func (h *ElectionHandler) BallotPreview(w http.ResponseWriter, r *http.Request) {
	size := h.cfg.BallotSize
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		size = n
	}

	candidates, err := h.builder.Build(r.Context(), ballot.Options{
		Size:             size,
		MaxAppearances:   h.cfg.MaxAppearances,
		IncludeUnengaged: h.cfg.Staging,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.BallotPreviewResponse{Candidates: candidates})
}

// CloseElection handles POST /elections/{id}/close (admin)
func (h *ElectionHandler) CloseElection(w http.ResponseWriter, r *http.Request) {
	if err := auth.CheckRequest(r, h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid admin token")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid election id")
		return
	}

	// Body is optional; an empty close is attributed to nobody.
	var req models.CloseElectionRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	resp, err := h.manager.Close(r.Context(), id, req.ClosedBy)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
