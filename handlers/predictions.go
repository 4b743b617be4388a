// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/middleware"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

type PredictionHandler struct {
	store *store.Store
	chat  chat.Client
	cfg   cliparse.Config
}

func NewPredictionHandler(s *store.Store, c chat.Client, cfg cliparse.Config) *PredictionHandler {
	return &PredictionHandler{store: s, chat: c, cfg: cfg}
}

// CreatePrediction handles POST /predictions
func (h *PredictionHandler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePredictionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.PredictorID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "predictor_id is required")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	content := fmt.Sprintf("🔮 <@%d> predicts: %q (due %s)", req.PredictorID, req.Text, req.DueDate)
	if req.Odds != nil {
		content = fmt.Sprintf("%s at odds %.2f", content, *req.Odds)
	}

	// The announcement is part of the record; losing it loses the public
	// stake, so failures fail the request.
	msg, err := h.chat.SendMessage(r.Context(), h.cfg.PredictionsChannelID, content)
	if err != nil {
		slog.Error("prediction announcement failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "failed to announce prediction")
		return
	}

	pred, err := h.store.CreatePrediction(r.Context(), req.PredictorID, req.Text, req.Odds, dueDate, msg.ID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("prediction created", "prediction_id", pred.ID, "due_date", req.DueDate)
	middleware.JSONResponse(w, http.StatusCreated, models.CreatePredictionResponse{
		ID:        pred.ID,
		MessageID: pred.MessageID,
	})
}
