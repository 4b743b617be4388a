package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/avelis/clubvote/ballot"
	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/db"
	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/indicator"
	"github.com/avelis/clubvote/metadata"
	"github.com/avelis/clubvote/router"
	"github.com/avelis/clubvote/scheduler"
	"github.com/avelis/clubvote/store"
)

func main() {
	logger := slog.Default()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		logger.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Run migrations
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Database schema ready")

	// Wire dependencies
	st := store.New(dbConn)

	var chatClient chat.Client = chat.NewRESTClient(cfg.ChatBaseURL, cfg.ChatToken, logger)
	var lookup metadata.Lookup = metadata.NewOpenLibrary("")
	var summarizer metadata.Summarizer = metadata.ExcerptSummarizer{}

	builder := ballot.NewBuilder(st, chatClient, cfg.NomChannelID, logger)
	syncer := indicator.NewSyncer(st, chatClient, cfg.BallotChannelID, logger)
	manager := election.NewManager(st, chatClient, builder, syncer, cfg, logger)

	// Background sweeps
	sched := scheduler.New(st, chatClient, manager, cfg, logger)
	go sched.Run(ctx)

	// Create router
	mux := router.NewRouter(st, manager, builder, chatClient, lookup, summarizer, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	// Start server
	logger.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server closed", "error", err)
	} else {
		logger.Info("Server closed", "error", err)
	}
}
