package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper is the sweep entry point. *service.LifecycleService satisfies it.
type Sweeper interface {
	SweepStale(ctx context.Context, now time.Time, thresholdDays int) (int, error)
}

// EscalationWorker fires the stale-complaint sweep on a cron schedule. The
// sweep itself has no notion of "already ran today"; the schedule alone
// decides cadence, so a missed or repeated fire is the worker's problem, not
// the engine's.
type EscalationWorker struct {
	sweeper       Sweeper
	thresholdDays int
	cronSpec      string
	cron          *cron.Cron
	log           zerolog.Logger
}

func NewEscalationWorker(sweeper Sweeper, thresholdDays int, cronSpec string, log zerolog.Logger) *EscalationWorker {
	return &EscalationWorker{
		sweeper:       sweeper,
		thresholdDays: thresholdDays,
		cronSpec:      cronSpec,
		log:           log,
	}
}

func (w *EscalationWorker) Start() error {
	if w.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(w.cronSpec, w.run); err != nil {
		return err
	}
	c.Start()
	w.cron = c
	w.log.Info().
		Str("schedule", w.cronSpec).
		Int("threshold_days", w.thresholdDays).
		Msg("escalation worker started")
	return nil
}

func (w *EscalationWorker) Stop() {
	if w.cron == nil {
		return
	}
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.cron = nil
	w.log.Info().Msg("escalation worker stopped")
}

func (w *EscalationWorker) run() {
	start := time.Now()
	count, err := w.sweeper.SweepStale(context.Background(), start, w.thresholdDays)
	if err != nil {
		w.log.Error().Err(err).Msg("escalation sweep failed")
		return
	}
	w.log.Info().
		Int("escalated", count).
		Dur("duration", time.Since(start)).
		Msg("escalation sweep completed")
}
