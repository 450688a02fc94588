// Package stories remembers which journeys' daily tasks were viewed today.
package stories

import (
	"context"
	"fmt"
	"time"

	"github.com/ShayCichocki/jrny/internal/kv"
)

// ViewedKey maps journey IDs to the day their daily tasks were last viewed.
const ViewedKey = "@App:viewedStoriesDates"

const dayLayout = "2006-01-02"

// Tracker stores viewed state in a kv.Store. A view only counts on the day
// it happened.
type Tracker struct {
	store kv.Store
	now   func() time.Time
	loc   *time.Location
}

// NewTracker creates a Tracker. A nil now uses time.Now; a nil loc uses
// time.Local.
func NewTracker(store kv.Store, now func() time.Time, loc *time.Location) *Tracker {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{store: store, now: now, loc: loc}
}

func (t *Tracker) today() string {
	return t.now().In(t.loc).Format(dayLayout)
}

func (t *Tracker) load(ctx context.Context) (map[string]string, error) {
	viewed := map[string]string{}
	if _, err := kv.GetJSON(ctx, t.store, ViewedKey, &viewed); err != nil {
		return nil, fmt.Errorf("load viewed stories: %w", err)
	}
	if viewed == nil {
		viewed = map[string]string{}
	}
	return viewed, nil
}

// MarkViewed records that the journey's daily tasks were viewed today.
func (t *Tracker) MarkViewed(ctx context.Context, journeyID string) error {
	viewed, err := t.load(ctx)
	if err != nil {
		return err
	}
	today := t.today()
	if viewed[journeyID] == today {
		return nil
	}
	viewed[journeyID] = today
	if err := kv.SetJSON(ctx, t.store, ViewedKey, viewed); err != nil {
		return fmt.Errorf("mark story viewed: %w", err)
	}
	return nil
}

// IsViewed reports whether the journey's daily tasks were viewed today.
func (t *Tracker) IsViewed(ctx context.Context, journeyID string) (bool, error) {
	viewed, err := t.load(ctx)
	if err != nil {
		return false, err
	}
	return viewed[journeyID] == t.today(), nil
}

// ViewedToday returns the subset of ids viewed today, in input order.
func (t *Tracker) ViewedToday(ctx context.Context, ids []string) ([]string, error) {
	viewed, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	today := t.today()
	var out []string
	for _, id := range ids {
		if viewed[id] == today {
			out = append(out, id)
		}
	}
	return out, nil
}

// Forget drops the viewed record of a journey, used when it is deleted.
func (t *Tracker) Forget(ctx context.Context, journeyID string) error {
	viewed, err := t.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := viewed[journeyID]; !ok {
		return nil
	}
	delete(viewed, journeyID)
	if err := kv.SetJSON(ctx, t.store, ViewedKey, viewed); err != nil {
		return fmt.Errorf("forget story: %w", err)
	}
	return nil
}
