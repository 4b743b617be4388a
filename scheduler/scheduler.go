// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/store"
)

// Scheduler runs the periodic sweeps: closing elections past their deadline
// and reminding the club about due predictions.
type Scheduler struct {
	store   *store.Store
	chat    chat.Client
	manager *election.Manager
	cfg     cliparse.Config
	logger  *slog.Logger
}

func New(s *store.Store, c chat.Client, m *election.Manager, cfg cliparse.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{store: s, chat: c, manager: m, cfg: cfg, logger: logger}
}

// Run blocks until ctx is cancelled, sweeping on the configured intervals.
// Both sweeps also fire once at startup so a restart never extends a
// deadline.
func (s *Scheduler) Run(ctx context.Context) {
	closeTicker := time.NewTicker(s.cfg.CloseSweepInterval)
	defer closeTicker.Stop()
	remindTicker := time.NewTicker(s.cfg.ReminderSweepInterval)
	defer remindTicker.Stop()

	s.sweepClose(ctx)
	s.sweepReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-closeTicker.C:
			s.sweepClose(ctx)
		case <-remindTicker.C:
			s.sweepReminders(ctx)
		}
	}
}

func (s *Scheduler) sweepClose(ctx context.Context) {
	if err := s.manager.CloseExpired(ctx, time.Now().UTC()); err != nil {
		s.logger.Error("close sweep failed", "error", err)
	}
}

// sweepReminders posts a reminder for every prediction whose due date has
// arrived. Each prediction is marked reminded only after its message lands,
// so a chat outage retries on the next sweep instead of dropping reminders.
func (s *Scheduler) sweepReminders(ctx context.Context) {
	due, err := s.store.DuePredictions(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("reminder sweep failed", "error", err)
		return
	}

	for _, pred := range due {
		content := fmt.Sprintf("⏰ Prediction due: <@%d> predicted %q (due %s)",
			pred.PredictorID, pred.Text, pred.DueDate.Format("2006-01-02"))
		if _, err := s.chat.SendMessage(ctx, s.cfg.PredictionsChannelID, content); err != nil {
			s.logger.Error("prediction reminder failed",
				"prediction_id", pred.ID, "error", err)
			continue
		}
		if err := s.store.MarkReminded(ctx, pred.ID); err != nil {
			s.logger.Error("failed to mark prediction reminded",
				"prediction_id", pred.ID, "error", err)
		}
	}
}
