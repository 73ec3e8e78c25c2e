package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubSweeper struct {
	calls     int
	threshold int
	err       error
}

func (s *stubSweeper) SweepStale(ctx context.Context, now time.Time, thresholdDays int) (int, error) {
	s.calls++
	s.threshold = thresholdDays
	return 2, s.err
}

func TestRunInvokesSweep(t *testing.T) {
	sweeper := &stubSweeper{}
	w := NewEscalationWorker(sweeper, 3, "0 0 * * *", zerolog.Nop())

	w.run()

	if sweeper.calls != 1 {
		t.Fatalf("expected 1 sweep call, got %d", sweeper.calls)
	}
	if sweeper.threshold != 3 {
		t.Fatalf("expected threshold 3, got %d", sweeper.threshold)
	}
}

func TestRunSurvivesSweepError(t *testing.T) {
	sweeper := &stubSweeper{err: errors.New("db down")}
	w := NewEscalationWorker(sweeper, 3, "0 0 * * *", zerolog.Nop())

	// Must not panic; the failure is logged and the next scheduled run
	// will try again.
	w.run()

	if sweeper.calls != 1 {
		t.Fatalf("expected 1 sweep call, got %d", sweeper.calls)
	}
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	w := NewEscalationWorker(&stubSweeper{}, 3, "not a cron spec", zerolog.Nop())
	if err := w.Start(); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStartStop(t *testing.T) {
	w := NewEscalationWorker(&stubSweeper{}, 3, "0 0 * * *", zerolog.Nop())
	if err := w.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start must be a no-op, got %v", err)
	}
	w.Stop()
	w.Stop()
}
