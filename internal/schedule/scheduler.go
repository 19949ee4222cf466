package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/config"
)

// NextAt computes the next reminder time after now that falls on a configured
// weekday and is not a holiday. It returns the zero time when no weekday is
// configured.
func NextAt(now time.Time, cfg config.ReminderConfig, loc *time.Location) time.Time {
	now = now.In(loc)

	hour, min := 21, 0
	if t, err := time.ParseInLocation("15:04", strings.TrimSpace(cfg.Time), loc); err == nil {
		hour, min = t.Hour(), t.Minute()
	}

	days := map[string]bool{}
	for _, d := range cfg.Workdays {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) >= 3 {
			days[d[:3]] = true
		}
	}
	if len(days) == 0 {
		return time.Time{}
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// a full year covers every weekday even with long holiday lists
	for i := 0; i < 366; i++ {
		abbr := strings.ToLower(cand.Weekday().String()[:3])
		if days[abbr] && !holidays[cand.Format("2006-01-02")] {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return time.Time{}
}

// RunConfigured calls f at every reminder time until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func(at time.Time)) {
	loc := cfg.Location()
	next := NextAt(time.Now(), cfg.Reminder, loc)
	if next.IsZero() {
		return
	}
	t := time.NewTimer(time.Until(next))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case fired := <-t.C:
			f(fired.In(loc))
			next = NextAt(time.Now(), cfg.Reminder, loc)
			if next.IsZero() {
				return
			}
			t.Reset(time.Until(next))
		}
	}
}
