// Package journey implements the journey plan state machine: the toggle rule,
// progress and status derivation, and the optimistic save with rollback.
package journey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ShayCichocki/jrny/internal/logging"
	"github.com/ShayCichocki/jrny/pkg/models"
)

var (
	// ErrJourneyNotFound is returned when the journey does not exist in the store.
	ErrJourneyNotFound = errors.New("journey not found")
	// ErrNoJourney is returned when the coordinator holds no journey.
	ErrNoJourney = errors.New("no journey loaded")
)

// PlanStore is the persistence boundary the coordinator talks to.
type PlanStore interface {
	// GetJourney returns the journey, or nil and no error when it does not exist.
	GetJourney(ctx context.Context, id string) (*models.Journey, error)
	// UpdatePlan stores a new plan. The store recomputes progress and status
	// with Progress and NextStatus. Returns ErrJourneyNotFound for a missing row.
	UpdatePlan(ctx context.Context, id string, plan models.Plan) error
	// DeleteJourney removes the journey.
	DeleteJourney(ctx context.Context, id string) error
}

// ToggleOutcome describes what happened to a toggle request.
type ToggleOutcome string

const (
	// OutcomeApplied means the change was shown and persisted.
	OutcomeApplied ToggleOutcome = "applied"
	// OutcomeBlocked means a prerequisite step is incomplete; nothing changed.
	OutcomeBlocked ToggleOutcome = "blocked"
	// OutcomeSkipped means another toggle was still saving; the request was dropped.
	OutcomeSkipped ToggleOutcome = "skipped"
	// OutcomeRolledBack means the save failed and the previous state was restored.
	OutcomeRolledBack ToggleOutcome = "rolled_back"
)

// ToggleResult reports the outcome of ToggleStep.
type ToggleResult struct {
	Outcome ToggleOutcome
	// Journey is the held journey after the operation, nil if it was released.
	Journey *models.Journey
	// Blocked is set for OutcomeBlocked.
	Blocked *BlockedStep
	// Err is the save error for OutcomeRolledBack.
	Err error
}

// Coordinator owns one journey while it is displayed or edited and
// serializes plan changes to it.
type Coordinator struct {
	store    PlanStore
	notifier Notifier
	logger   *logging.Logger
	now      func() time.Time

	mu      sync.Mutex
	journey *models.Journey
	gone    bool

	// generation changes whenever a different journey is held, so a save
	// that finishes late can tell its snapshot no longer applies.
	generation uint64

	// updating is set while a save is in flight for generation updatingGen.
	updating    bool
	updatingGen uint64
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithNotifier sets the notifier. Defaults to NopNotifier.
func WithNotifier(n Notifier) CoordinatorOption {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *logging.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = l.With("coordinator")
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCoordinator creates a coordinator backed by store.
func NewCoordinator(store PlanStore, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:    store,
		notifier: NopNotifier{},
		logger:   logging.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches a journey and makes it the held journey. Legacy plans are
// normalized on the way in.
func (c *Coordinator) Load(ctx context.Context, id string) (*models.Journey, error) {
	j, err := c.store.GetJourney(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load journey %s: %w", id, err)
	}
	if j == nil {
		return nil, fmt.Errorf("load journey %s: %w", id, ErrJourneyNotFound)
	}
	j.Plan = models.MigratePlan(j.Plan)

	c.mu.Lock()
	c.journey = j
	c.gone = false
	c.generation++
	snap := j.Clone()
	c.mu.Unlock()

	c.logger.Log("loaded journey %s (%d steps, %s, %d%%)", id, len(j.Plan), j.Status, j.Progress)
	return snap, nil
}

// Reload re-fetches the held journey. While a toggle is saving, it returns
// the current in-memory state without fetching so the optimistic view is not
// clobbered by a stale read.
func (c *Coordinator) Reload(ctx context.Context) (*models.Journey, error) {
	c.mu.Lock()
	if c.journey == nil {
		c.mu.Unlock()
		return nil, ErrNoJourney
	}
	if c.savingLocked() {
		snap := c.journey.Clone()
		c.mu.Unlock()
		return snap, nil
	}
	id := c.journey.ID
	c.mu.Unlock()

	j, err := c.Load(ctx, id)
	if errors.Is(err, ErrJourneyNotFound) {
		c.mu.Lock()
		c.gone = true
		c.mu.Unlock()
	}
	return j, err
}

// Snapshot returns a copy of the held journey, or nil.
func (c *Coordinator) Snapshot() *models.Journey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.journey.Clone()
}

// Updating reports whether a toggle on the held journey is waiting on the
// store.
func (c *Coordinator) Updating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.savingLocked()
}

// savingLocked reports whether the in-flight save, if any, belongs to the
// journey held now. A save started before Load or Release does not count.
func (c *Coordinator) savingLocked() bool {
	return c.updating && c.updatingGen == c.generation
}

// Gone reports whether the store said the held journey no longer exists.
func (c *Coordinator) Gone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gone
}

// ToggleStep toggles the plan step at index.
//
// The new plan, progress and status are applied to the held journey before
// the store is called. If the store fails, the held journey is restored to
// its state before the toggle. Only one toggle per held journey may be
// saving at a time; requests arriving meanwhile are dropped with
// OutcomeSkipped.
//
// The returned error is reserved for caller mistakes (no journey held, index
// out of range, journey known to be gone). Blocks and failed saves are
// reported through the result and the notifier.
func (c *Coordinator) ToggleStep(ctx context.Context, index int) (ToggleResult, error) {
	c.mu.Lock()
	if c.journey == nil {
		c.mu.Unlock()
		return ToggleResult{}, ErrNoJourney
	}
	if c.gone {
		id := c.journey.ID
		c.mu.Unlock()
		return ToggleResult{}, fmt.Errorf("toggle step on journey %s: %w", id, ErrJourneyNotFound)
	}
	if c.savingLocked() {
		snap := c.journey.Clone()
		c.mu.Unlock()
		c.logger.Log("journey %s: toggle of step %d dropped, save in flight", snap.ID, index)
		return ToggleResult{Outcome: OutcomeSkipped, Journey: snap}, nil
	}

	before := c.journey.Clone()
	id := before.ID

	outcome, err := Toggle(c.journey.Plan, index)
	if err != nil {
		c.mu.Unlock()
		return ToggleResult{}, err
	}

	if outcome.Blocked != nil {
		c.mu.Unlock()
		blocked := outcome.Blocked
		c.logger.Log("journey %s: step %d blocked by step %d", id, index, blocked.Index)
		c.notifier.PrerequisiteBlocked(id, blocked.Index, blocked.Text)
		return ToggleResult{Outcome: OutcomeBlocked, Journey: before, Blocked: blocked}, nil
	}

	completed, total := Counts(outcome.Plan)
	c.journey.Plan = outcome.Plan
	c.journey.Progress = percent(completed, total)
	c.journey.Status = NextStatus(before.Status, completed, total)
	c.journey.UpdatedAt = c.now()
	gen := c.generation
	c.updating = true
	c.updatingGen = gen
	optimistic := c.journey.Clone()
	c.mu.Unlock()

	c.logger.Log("journey %s: step %d -> completed=%t, %d/%d steps, %d%%, %s",
		id, index, outcome.Completed, completed, total, optimistic.Progress, optimistic.Status)

	saveErr := c.store.UpdatePlan(ctx, id, outcome.Plan.Clone())

	c.mu.Lock()
	if c.updatingGen == gen {
		c.updating = false
	}
	if saveErr == nil {
		c.mu.Unlock()
		c.notifier.PlanSaved(id)
		return ToggleResult{Outcome: OutcomeApplied, Journey: optimistic}, nil
	}

	if c.journey != nil && c.generation == gen {
		c.journey = before
		if errors.Is(saveErr, ErrJourneyNotFound) {
			c.gone = true
		}
	}
	current := c.journey.Clone()
	c.mu.Unlock()

	c.logger.Log("journey %s: save failed, rolled back: %v", id, saveErr)
	c.notifier.SaveFailed(id, saveErr)
	return ToggleResult{
		Outcome: OutcomeRolledBack,
		Journey: current,
		Err:     fmt.Errorf("save plan for journey %s: %w", id, saveErr),
	}, nil
}

// Delete removes the held journey from the store and releases it.
func (c *Coordinator) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.journey == nil {
		c.mu.Unlock()
		return ErrNoJourney
	}
	id := c.journey.ID
	c.mu.Unlock()

	if err := c.store.DeleteJourney(ctx, id); err != nil {
		c.logger.Log("journey %s: delete failed: %v", id, err)
		return fmt.Errorf("delete journey %s: %w", id, err)
	}

	c.mu.Lock()
	if c.journey != nil && c.journey.ID == id {
		c.journey = nil
		c.generation++
	}
	c.mu.Unlock()

	c.logger.Log("journey %s deleted", id)
	c.notifier.JourneyDeleted(id)
	return nil
}

// Release drops the held journey. A save still in flight will not roll
// anything back once it returns.
func (c *Coordinator) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journey = nil
	c.gone = false
	c.generation++
}
