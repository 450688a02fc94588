package journey

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ShayCichocki/jrny/pkg/models"
)

// memStore is an in-memory PlanStore that mirrors the sqlite store's
// recompute-on-write behaviour.
type memStore struct {
	mu       sync.Mutex
	journeys map[string]*models.Journey
	updates  int
	failWith error
	// gate, when set, blocks UpdatePlan until it is closed. gateID limits
	// the gate to one journey.
	gate    chan struct{}
	gateID  string
	entered chan struct{}
}

func newMemStore(js ...*models.Journey) *memStore {
	s := &memStore{journeys: make(map[string]*models.Journey)}
	for _, j := range js {
		s.journeys[j.ID] = j.Clone()
	}
	return s
}

func (s *memStore) GetJourney(_ context.Context, id string) (*models.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journeys[id].Clone(), nil
}

func (s *memStore) UpdatePlan(_ context.Context, id string, plan models.Plan) error {
	if s.gateID == "" || s.gateID == id {
		if s.entered != nil {
			s.entered <- struct{}{}
		}
		if s.gate != nil {
			<-s.gate
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.failWith != nil {
		return s.failWith
	}
	j, ok := s.journeys[id]
	if !ok {
		return ErrJourneyNotFound
	}
	j.Plan = plan.Clone()
	j.Progress = Progress(plan)
	j.Status = StatusForPlan(j.Status, plan)
	return nil
}

func (s *memStore) DeleteJourney(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.journeys[id]; !ok {
		return ErrJourneyNotFound
	}
	delete(s.journeys, id)
	return nil
}

func (s *memStore) stored(id string) *models.Journey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journeys[id].Clone()
}

type recordingNotifier struct {
	mu      sync.Mutex
	blocked []string
	failed  []error
	saved   int
	deleted []string
}

func (n *recordingNotifier) PrerequisiteBlocked(_ string, _ int, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.blocked = append(n.blocked, text)
}

func (n *recordingNotifier) SaveFailed(_ string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, err)
}

func (n *recordingNotifier) PlanSaved(string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.saved++
}

func (n *recordingNotifier) JourneyDeleted(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deleted = append(n.deleted, id)
}

func testJourney(texts ...string) *models.Journey {
	return &models.Journey{
		ID:     "j1",
		UserID: "u1",
		Title:  "Learn Go",
		Status: models.JourneyPlanned,
		Plan:   models.PlanFromTexts(texts),
	}
}

func newTestCoordinator(t *testing.T, store PlanStore, n Notifier) *Coordinator {
	t.Helper()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCoordinator(store, WithNotifier(n), WithClock(func() time.Time { return fixed }))
	if _, err := c.Load(context.Background(), "j1"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func mustToggle(t *testing.T, c *Coordinator, idx int) ToggleResult {
	t.Helper()
	res, err := c.ToggleStep(context.Background(), idx)
	if err != nil {
		t.Fatalf("ToggleStep(%d) error: %v", idx, err)
	}
	return res
}

func TestCoordinator_EndToEndScenario(t *testing.T) {
	store := newMemStore(testJourney("a", "b", "c"))
	n := &recordingNotifier{}
	c := newTestCoordinator(t, store, n)

	res := mustToggle(t, c, 0)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("toggle 0 outcome = %s", res.Outcome)
	}
	if got := stepsDone(res.Journey.Plan); !equalBools(got, []bool{true, false, false}) {
		t.Errorf("plan = %v", got)
	}
	if res.Journey.Progress != 33 || res.Journey.Status != models.JourneyActive {
		t.Errorf("after toggle 0: progress %d status %s", res.Journey.Progress, res.Journey.Status)
	}

	res = mustToggle(t, c, 2)
	if res.Outcome != OutcomeBlocked {
		t.Fatalf("toggle 2 outcome = %s, want blocked", res.Outcome)
	}
	if res.Blocked.Text != "b" {
		t.Errorf("blocking step = %q, want b", res.Blocked.Text)
	}
	if got := stepsDone(c.Snapshot().Plan); !equalBools(got, []bool{true, false, false}) {
		t.Errorf("plan changed on rejection: %v", got)
	}

	mustToggle(t, c, 1)
	res = mustToggle(t, c, 2)
	if res.Journey.Progress != 100 || res.Journey.Status != models.JourneyActive {
		t.Errorf("after completing all: progress %d status %s", res.Journey.Progress, res.Journey.Status)
	}

	res = mustToggle(t, c, 0)
	if got := stepsDone(res.Journey.Plan); !equalBools(got, []bool{false, false, false}) {
		t.Errorf("plan after uncomplete = %v", got)
	}
	if res.Journey.Progress != 0 || res.Journey.Status != models.JourneyPlanned {
		t.Errorf("after uncomplete: progress %d status %s", res.Journey.Progress, res.Journey.Status)
	}

	stored := store.stored("j1")
	if !stored.Plan.Equal(res.Journey.Plan) || stored.Progress != 0 || stored.Status != models.JourneyPlanned {
		t.Errorf("store diverged: %+v", stored)
	}
	if n.saved != 4 || len(n.blocked) != 1 || len(n.failed) != 0 {
		t.Errorf("notifications: saved=%d blocked=%v failed=%v", n.saved, n.blocked, n.failed)
	}
}

func TestCoordinator_RollbackOnFailingStore(t *testing.T) {
	j := testJourney("a", "b", "c")
	j.Plan[0].Completed = true
	j.Status = models.JourneyActive
	j.Progress = 33
	j.UpdatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	store := newMemStore(j)
	n := &recordingNotifier{}
	c := newTestCoordinator(t, store, n)
	store.failWith = errors.New("network down")

	for _, idx := range []int{0, 1} {
		res := mustToggle(t, c, idx)
		if res.Outcome != OutcomeRolledBack {
			t.Fatalf("toggle %d outcome = %s, want rolled back", idx, res.Outcome)
		}
		if res.Err == nil {
			t.Errorf("toggle %d: missing error", idx)
		}

		snap := c.Snapshot()
		if !snap.Plan.Equal(j.Plan) {
			t.Errorf("toggle %d: plan not restored: %v", idx, stepsDone(snap.Plan))
		}
		if snap.Progress != 33 || snap.Status != models.JourneyActive || !snap.UpdatedAt.Equal(j.UpdatedAt) {
			t.Errorf("toggle %d: snapshot not restored: %+v", idx, snap)
		}
		if c.Updating() {
			t.Errorf("toggle %d: still updating", idx)
		}
	}

	if len(n.failed) != 2 || n.saved != 0 {
		t.Errorf("notifications: failed=%d saved=%d", len(n.failed), n.saved)
	}
}

func TestCoordinator_NotFoundMarksGone(t *testing.T) {
	store := newMemStore(testJourney("a"))
	c := newTestCoordinator(t, store, nil)

	store.mu.Lock()
	delete(store.journeys, "j1")
	store.mu.Unlock()

	res := mustToggle(t, c, 0)
	if res.Outcome != OutcomeRolledBack || !errors.Is(res.Err, ErrJourneyNotFound) {
		t.Fatalf("outcome = %s err = %v", res.Outcome, res.Err)
	}
	if !c.Gone() {
		t.Fatal("Gone() = false after not-found save")
	}

	_, err := c.ToggleStep(context.Background(), 0)
	if !errors.Is(err, ErrJourneyNotFound) {
		t.Errorf("toggle on gone journey error = %v", err)
	}
	if store.updates != 1 {
		t.Errorf("store updates = %d, want 1", store.updates)
	}
}

func TestCoordinator_ToggleWhileSavingIsSkipped(t *testing.T) {
	store := newMemStore(testJourney("a", "b"))
	store.gate = make(chan struct{})
	store.entered = make(chan struct{}, 1)
	c := newTestCoordinator(t, store, nil)

	done := make(chan ToggleResult)
	go func() {
		res, _ := c.ToggleStep(context.Background(), 0)
		done <- res
	}()
	<-store.entered

	if !c.Updating() {
		t.Fatal("Updating() = false during save")
	}
	if snap := c.Snapshot(); !snap.Plan[0].Completed || snap.Progress != 50 {
		t.Errorf("optimistic state not visible: %+v", snap)
	}
	if snap, err := c.Reload(context.Background()); err != nil || !snap.Plan[0].Completed {
		t.Errorf("Reload during save = %+v, %v", snap, err)
	}

	res := mustToggle(t, c, 1)
	if res.Outcome != OutcomeSkipped {
		t.Errorf("concurrent toggle outcome = %s, want skipped", res.Outcome)
	}

	close(store.gate)
	if first := <-done; first.Outcome != OutcomeApplied {
		t.Errorf("first toggle outcome = %s", first.Outcome)
	}
	if store.updates != 1 {
		t.Errorf("store updates = %d, want 1", store.updates)
	}
	if snap := c.Snapshot(); snap.Plan[1].Completed {
		t.Error("skipped toggle was applied")
	}
}

func TestCoordinator_ReleaseDuringSaveSkipsRollback(t *testing.T) {
	store := newMemStore(testJourney("a"))
	store.gate = make(chan struct{})
	store.entered = make(chan struct{}, 1)
	store.failWith = errors.New("timeout")
	c := newTestCoordinator(t, store, nil)

	done := make(chan ToggleResult)
	go func() {
		res, _ := c.ToggleStep(context.Background(), 0)
		done <- res
	}()
	<-store.entered

	c.Release()
	close(store.gate)

	res := <-done
	if res.Outcome != OutcomeRolledBack {
		t.Errorf("outcome = %s", res.Outcome)
	}
	if res.Journey != nil || c.Snapshot() != nil {
		t.Error("released coordinator holds a journey after late rollback")
	}
}

func TestCoordinator_SaveInFlightDoesNotBlockNextJourney(t *testing.T) {
	second := testJourney("x", "y")
	second.ID = "j2"
	store := newMemStore(testJourney("a", "b"), second)
	store.gate = make(chan struct{})
	store.gateID = "j1"
	store.entered = make(chan struct{}, 1)
	c := newTestCoordinator(t, store, nil)

	done := make(chan ToggleResult)
	go func() {
		res, _ := c.ToggleStep(context.Background(), 0)
		done <- res
	}()
	<-store.entered

	if _, err := c.Load(context.Background(), "j2"); err != nil {
		t.Fatalf("Load(j2) failed: %v", err)
	}
	if c.Updating() {
		t.Error("Updating() = true for a journey with no save in flight")
	}

	res := mustToggle(t, c, 0)
	if res.Outcome != OutcomeApplied {
		t.Fatalf("toggle on j2 outcome = %s, want applied", res.Outcome)
	}
	if got := store.stored("j2"); !got.Plan[0].Completed || got.Progress != 50 {
		t.Errorf("stored j2 = %+v", got)
	}

	if _, err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	close(store.gate)
	if first := <-done; first.Outcome != OutcomeApplied {
		t.Errorf("j1 toggle outcome = %s", first.Outcome)
	}
	if c.Updating() {
		t.Error("Updating() = true after both saves returned")
	}
	snap := c.Snapshot()
	if snap.ID != "j2" || !snap.Plan[0].Completed {
		t.Errorf("held journey = %+v, want j2 with step 1 done", snap)
	}
	if got := store.stored("j1"); !got.Plan[0].Completed {
		t.Error("late j1 save was lost")
	}
}

func TestCoordinator_Errors(t *testing.T) {
	c := NewCoordinator(newMemStore())
	if _, err := c.ToggleStep(context.Background(), 0); !errors.Is(err, ErrNoJourney) {
		t.Errorf("ToggleStep without journey error = %v", err)
	}
	if err := c.Delete(context.Background()); !errors.Is(err, ErrNoJourney) {
		t.Errorf("Delete without journey error = %v", err)
	}
	if _, err := c.Load(context.Background(), "missing"); !errors.Is(err, ErrJourneyNotFound) {
		t.Errorf("Load missing error = %v", err)
	}

	c = newTestCoordinator(t, newMemStore(testJourney("a")), nil)
	if _, err := c.ToggleStep(context.Background(), 5); !errors.Is(err, ErrStepOutOfRange) {
		t.Errorf("out of range error = %v", err)
	}
}

func TestCoordinator_LoadMigratesLegacyPlan(t *testing.T) {
	j := testJourney()
	j.Plan = nil
	c := newTestCoordinator(t, newMemStore(j), nil)

	snap := c.Snapshot()
	if snap.Plan == nil || len(snap.Plan) != 0 {
		t.Errorf("plan = %#v, want empty non-nil", snap.Plan)
	}
}

func TestCoordinator_Delete(t *testing.T) {
	store := newMemStore(testJourney("a"))
	n := &recordingNotifier{}
	c := newTestCoordinator(t, store, n)

	if err := c.Delete(context.Background()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.stored("j1") != nil {
		t.Error("journey still stored")
	}
	if c.Snapshot() != nil {
		t.Error("coordinator still holds deleted journey")
	}
	if len(n.deleted) != 1 || n.deleted[0] != "j1" {
		t.Errorf("deleted notifications = %v", n.deleted)
	}
}

func TestCoordinator_DeleteFailureKeepsJourney(t *testing.T) {
	store := newMemStore(testJourney("a"))
	c := newTestCoordinator(t, store, nil)
	store.failWith = errors.New("permission denied")

	if err := c.Delete(context.Background()); err == nil {
		t.Fatal("expected delete error")
	}
	if c.Snapshot() == nil {
		t.Error("journey released after failed delete")
	}
}

func TestCoordinator_SnapshotIsACopy(t *testing.T) {
	c := newTestCoordinator(t, newMemStore(testJourney("a")), nil)

	snap := c.Snapshot()
	snap.Plan[0].Completed = true
	if c.Snapshot().Plan[0].Completed {
		t.Error("mutating a snapshot changed the held journey")
	}
}
