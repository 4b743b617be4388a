// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/avelis/clubvote/ballot"
	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/handlers"
	"github.com/avelis/clubvote/metadata"
	"github.com/avelis/clubvote/middleware"
	"github.com/avelis/clubvote/store"
)

func NewRouter(s *store.Store, m *election.Manager, b *ballot.Builder, c chat.Client, lookup metadata.Lookup, summarizer metadata.Summarizer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	bookHandler := handlers.NewBookHandler(s, lookup, summarizer)
	nominationHandler := handlers.NewNominationHandler(s)
	electionHandler := handlers.NewElectionHandler(s, m, b, cfg)
	voteHandler := handlers.NewVoteHandler(m)
	predictionHandler := handlers.NewPredictionHandler(s, c, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Book catalog
	mux.HandleFunc("POST /books", middleware.WithLogging(bookHandler.CreateBook))
	mux.HandleFunc("GET /books/{id}", middleware.WithLogging(bookHandler.GetBook))

	// Nominations
	mux.HandleFunc("POST /nominations", middleware.WithLogging(nominationHandler.CreateNomination))
	mux.HandleFunc("PATCH /nominations/{id}", middleware.WithLogging(nominationHandler.UpdateNomination))
	mux.HandleFunc("DELETE /nominations/{id}", middleware.WithLogging(nominationHandler.CancelNomination))

	// Election lifecycle (open/close are admin operations)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.OpenElection))
	mux.HandleFunc("GET /elections/current", middleware.WithLogging(electionHandler.CurrentElection))
	mux.HandleFunc("GET /elections/ballot-preview", middleware.WithLogging(electionHandler.BallotPreview))
	mux.HandleFunc("POST /elections/{id}/close", middleware.WithLogging(electionHandler.CloseElection))

	// Voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.CastVote))

	// Predictions
	mux.HandleFunc("POST /predictions", middleware.WithLogging(predictionHandler.CreatePrediction))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("clubvote API v1"))
	})

	return mux
}
