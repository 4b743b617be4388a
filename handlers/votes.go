// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/middleware"
	"github.com/avelis/clubvote/models"
)

type VoteHandler struct {
	manager *election.Manager
}

func NewVoteHandler(m *election.Manager) *VoteHandler {
	return &VoteHandler{manager: m}
}

// CastVote handles POST /votes. A successful submission has no body to
// return: the vote either landed exactly as sent or the request failed.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.VoterID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}
	if len(req.Entries) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "entries is required")
		return
	}

	if err := h.manager.SubmitVote(r.Context(), req); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
