// Package notify delivers duty reminders to their destinations.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// Reminder is one upcoming duty to announce.
type Reminder struct {
	Entry     model.ScheduleEntry
	DaysAhead int
}

func (r Reminder) Subject() string {
	return fmt.Sprintf("Duty reminder: %s", r.Entry.ActivityName)
}

func (r Reminder) Body() string {
	var when string
	switch r.DaysAhead {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", r.DaysAhead)
	}
	return fmt.Sprintf("%s is on duty for %s on %s (%s).",
		r.Entry.MemberName, r.Entry.ActivityName, r.Entry.Date, when)
}

// Notifier delivers a single reminder. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the log. It is the default sink, so a
// deployment with no push URLs configured still surfaces every reminder.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.log.Info("duty reminder",
		"activity", r.Entry.ActivityName,
		"member", r.Entry.MemberName,
		"date", r.Entry.Date.String(),
		"days_ahead", r.DaysAhead,
	)
	return nil
}

// Multi fans a reminder out to every sink and reports the combined
// failures. Every sink is attempted even when an earlier one fails.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, r Reminder) error {
	var errs error
	for _, n := range m {
		if err := n.Notify(ctx, r); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
