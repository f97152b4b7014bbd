// Package schedule fires the optional daily study reminder.
package schedule

import (
	"context"
	"time"

	"gatedesk/internal/config"
)

// NextAt computes the next occurrence of the configured reminder time
// after now.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	hour, min := 17, 0
	if t, err := time.ParseInLocation("15:04", cfg.Reminder.Time, loc); err == nil {
		hour = t.Hour()
		min = t.Minute()
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// RunConfigured calls f at the reminder time every day until ctx is
// canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	next := NextAt(time.Now(), cfg)
	t := time.NewTimer(time.Until(next))
	for {
		select {
		case <-ctx.Done():
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			return
		case <-t.C:
			f()
			next = NextAt(time.Now(), cfg)
			t.Reset(time.Until(next))
		}
	}
}
