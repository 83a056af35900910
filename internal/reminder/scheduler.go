// Package reminder scans the schedule and pushes lead-time reminders for
// upcoming duties.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/danli429/team-scheduling-system/internal/model"
	"github.com/danli429/team-scheduling-system/internal/notify"
	"github.com/danli429/team-scheduling-system/internal/store"
)

// DefaultInterval is how often the scheduler rescans when no interval is
// configured. Reminder matching is at day granularity.
const DefaultInterval = 24 * time.Hour

// Scheduler periodically claims due schedule entries and hands them to a
// notifier. Claiming happens inside the store, so overlapping scans or
// restarts never deliver the same reminder twice.
type Scheduler struct {
	store    *store.Store
	notifier notify.Notifier
	log      *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(st *store.Store, notifier notify.Notifier, log *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		store:    st,
		notifier: notifier,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
}

// Start launches the scan loop: one scan right away, then one per
// interval. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.scan(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.scan(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight scan to finish. Stopping
// a stopped scheduler is safe.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) scan(ctx context.Context) {
	sent, err := s.ScanNow(ctx)
	if err != nil {
		s.log.Error("reminder scan failed", "error", err)
	}
	if sent > 0 {
		s.log.Info("reminders sent", "count", sent)
	}
}

// ScanNow runs a single scan: reload the store, claim the entries whose
// date is exactly the configured lead time away, and deliver each one.
// It returns how many reminders were claimed. Entries stay claimed even
// when delivery fails; failures are reported, not retried.
func (s *Scheduler) ScanNow(ctx context.Context) (int, error) {
	// Another process may have regenerated the schedule since we loaded.
	if err := s.store.Reload(); err != nil {
		return 0, fmt.Errorf("reload store: %w", err)
	}

	settings := s.store.Settings()
	if !settings.NotificationEnabled {
		s.log.Debug("notifications disabled, skipping scan")
		return 0, nil
	}

	target := model.DateOf(s.now()).AddDays(settings.NotificationDays)
	claimed, err := s.store.ClaimDueReminders(target)
	if err != nil {
		return 0, fmt.Errorf("claim due reminders: %w", err)
	}
	if len(claimed) == 0 {
		s.log.Debug("no reminders due", "target", target.String())
		return 0, nil
	}

	var errs error
	for _, entry := range claimed {
		r := notify.Reminder{Entry: entry, DaysAhead: settings.NotificationDays}
		if err := s.notifier.Notify(ctx, r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("notify %s/%s: %w", entry.ActivityName, entry.MemberName, err))
		}
	}
	return len(claimed), errs
}
