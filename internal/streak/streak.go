// Package streak tracks consecutive-day logins and the set of active days
// shown on the activity calendar.
package streak

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ShayCichocki/jrny/internal/kv"
	"github.com/ShayCichocki/jrny/internal/logging"
)

// Storage keys.
const (
	LastLoginKey  = "@App:lastLoginDate"
	StreakKey     = "@App:loginStreakCount"
	ActiveDaysKey = "@App:activeDates"
)

// DayLayout is the format of stored day strings.
const DayLayout = "2006-01-02"

// Tracker records logins in a kv.Store.
type Tracker struct {
	store  kv.Store
	now    func() time.Time
	loc    *time.Location
	logger *logging.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the time zone that decides where a day starts.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// WithLogger sets the debug logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tracker) { t.logger = l.With("streak") }
}

// NewTracker creates a Tracker backed by store.
func NewTracker(store kv.Store, opts ...Option) *Tracker {
	t := &Tracker{store: store, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Day returns the day key for ts in the tracker's location.
func (t *Tracker) Day(ts time.Time) string {
	return ts.In(t.loc).Format(DayLayout)
}

// RecordLogin updates the streak for a login now and returns the new count.
// A second login on the same day leaves the streak unchanged. A login the
// day after the last one extends it; any longer gap resets it to 1.
func (t *Tracker) RecordLogin(ctx context.Context) (int, error) {
	now := t.now()
	today := t.Day(now)

	last, hadLast, err := t.store.Get(ctx, LastLoginKey)
	if err != nil {
		return 0, fmt.Errorf("record login: %w", err)
	}
	current, err := t.Current(ctx)
	if err != nil {
		return 0, fmt.Errorf("record login: %w", err)
	}

	if err := t.markActive(ctx, today); err != nil {
		return 0, fmt.Errorf("record login: %w", err)
	}

	if hadLast && last == today {
		t.logger.Log("already logged in today, streak %d", current)
		return current, nil
	}

	yesterday := t.Day(now.In(t.loc).AddDate(0, 0, -1))
	switch {
	case hadLast && last == yesterday:
		current++
		t.logger.Log("consecutive day, streak %d", current)
	case hadLast:
		current = 1
		t.logger.Log("streak broken (last login %s), reset to 1", last)
	default:
		current = 1
		t.logger.Log("first login, streak 1")
	}

	if err := t.store.Set(ctx, LastLoginKey, today); err != nil {
		return 0, fmt.Errorf("record login: %w", err)
	}
	if err := t.store.Set(ctx, StreakKey, strconv.Itoa(current)); err != nil {
		return 0, fmt.Errorf("record login: %w", err)
	}
	return current, nil
}

// Current returns the stored streak, 0 if none. An unreadable count is
// treated as 0.
func (t *Tracker) Current(ctx context.Context) (int, error) {
	raw, ok, err := t.store.Get(ctx, StreakKey)
	if err != nil {
		return 0, fmt.Errorf("get streak: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

// ActiveDates returns the recorded active days in ascending order.
func (t *Tracker) ActiveDates(ctx context.Context) ([]string, error) {
	var days []string
	if _, err := kv.GetJSON(ctx, t.store, ActiveDaysKey, &days); err != nil {
		return nil, fmt.Errorf("get active dates: %w", err)
	}
	sort.Strings(days)
	return days, nil
}

// ActiveInMonth returns the days of the given month that were active.
func (t *Tracker) ActiveInMonth(ctx context.Context, year int, month time.Month) ([]int, error) {
	days, err := t.ActiveDates(ctx)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, d := range days {
		ts, err := time.ParseInLocation(DayLayout, d, t.loc)
		if err != nil {
			continue
		}
		if ts.Year() == year && ts.Month() == month {
			out = append(out, ts.Day())
		}
	}
	return out, nil
}

func (t *Tracker) markActive(ctx context.Context, day string) error {
	days, err := t.ActiveDates(ctx)
	if err != nil {
		return err
	}
	i := sort.SearchStrings(days, day)
	if i < len(days) && days[i] == day {
		return nil
	}
	days = append(days, "")
	copy(days[i+1:], days[i:])
	days[i] = day
	return kv.SetJSON(ctx, t.store, ActiveDaysKey, days)
}
