package journey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ShayCichocki/jrny/pkg/models"
)

type fakeWriter struct {
	mu        sync.Mutex
	created   []*models.Journey
	plans     map[string]models.Plan
	tasks     map[string][]string
	createErr error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{plans: map[string]models.Plan{}, tasks: map[string][]string{}}
}

func (w *fakeWriter) CreateJourney(_ context.Context, j *models.Journey) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.createErr != nil {
		return w.createErr
	}
	if j.ID == "" {
		j.ID = fmt.Sprintf("id-%d", len(w.created)+1)
	}
	w.created = append(w.created, j.Clone())
	return nil
}

func (w *fakeWriter) SetGeneratedContent(_ context.Context, id string, plan models.Plan, tasks []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.plans[id]) == 0 {
		w.plans[id] = plan
	}
	w.tasks[id] = tasks
	return nil
}

type fakeGenerator struct {
	mu       sync.Mutex
	requests []models.PlanRequest
	result   *models.PlanBreakdown
	err      error
}

func (g *fakeGenerator) GeneratePlan(_ context.Context, req models.PlanRequest) (*models.PlanBreakdown, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.result, g.err
}

func TestCreator_Create(t *testing.T) {
	w := newFakeWriter()
	g := &fakeGenerator{result: &models.PlanBreakdown{
		Plan:       []string{"Install Go", "Write hello world"},
		DailyTasks: []string{"Read one chapter"},
	}}
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	c := NewCreator(CreatorConfig{
		Store:     w,
		Generator: g,
		UserID:    "u1",
		Now:       func() time.Time { return now },
	})

	j, err := c.Create(context.Background(), models.JourneyForm{
		Title:    "  Learn Go  ",
		Duration: "1 month",
		Priority: models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c.Wait()

	if j.ID == "" || j.Title != "Learn Go" || j.UserID != "u1" {
		t.Errorf("journey = %+v", j)
	}
	if j.Status != models.JourneyPlanned || j.Progress != 0 || j.Plan == nil || len(j.Plan) != 0 {
		t.Errorf("initial state = %s %d %v", j.Status, j.Progress, j.Plan)
	}
	if !j.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v", j.CreatedAt)
	}

	if len(g.requests) != 1 || g.requests[0].Title != "Learn Go" || g.requests[0].Duration != "1 month" {
		t.Errorf("generator requests = %+v", g.requests)
	}
	plan := w.plans[j.ID]
	if len(plan) != 2 || plan[0].Text != "Install Go" || plan[0].Completed {
		t.Errorf("stored plan = %+v", plan)
	}
	if len(w.tasks[j.ID]) != 1 {
		t.Errorf("stored tasks = %v", w.tasks[j.ID])
	}
}

func TestCreator_Validation(t *testing.T) {
	c := NewCreator(CreatorConfig{Store: newFakeWriter()})

	if _, err := c.Create(context.Background(), models.JourneyForm{Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank title error = %v", err)
	}
	if _, err := c.Create(context.Background(), models.JourneyForm{Title: "x", Priority: "Urgent"}); err == nil {
		t.Error("expected invalid priority error")
	}
}

func TestCreator_StoreFailure(t *testing.T) {
	w := newFakeWriter()
	w.createErr = errors.New("disk full")
	c := NewCreator(CreatorConfig{Store: w})

	if _, err := c.Create(context.Background(), models.JourneyForm{Title: "x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreator_GenerationFailureDoesNotFailCreate(t *testing.T) {
	w := newFakeWriter()
	g := &fakeGenerator{err: errors.New("rate limited")}
	c := NewCreator(CreatorConfig{Store: w, Generator: g})

	j, err := c.Create(context.Background(), models.JourneyForm{Title: "Run a marathon"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c.Wait()

	if _, ok := w.plans[j.ID]; ok {
		t.Error("plan stored despite generator failure")
	}
	if err := c.Enrich(context.Background(), j); err == nil {
		t.Error("Enrich should surface the generator error")
	}
}

func TestCreator_EmptyBreakdownIsIgnored(t *testing.T) {
	w := newFakeWriter()
	c := NewCreator(CreatorConfig{Store: w, Generator: &fakeGenerator{result: &models.PlanBreakdown{}}})

	if err := c.Enrich(context.Background(), &models.Journey{ID: "j1", Title: "x"}); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if _, ok := w.plans["j1"]; ok {
		t.Error("empty breakdown was stored")
	}
}

func TestCreator_CancelledCallerStillEnriches(t *testing.T) {
	w := newFakeWriter()
	g := &fakeGenerator{result: &models.PlanBreakdown{Plan: []string{"a"}}}
	c := NewCreator(CreatorConfig{Store: w, Generator: g})

	ctx, cancel := context.WithCancel(context.Background())
	j, err := c.Create(ctx, models.JourneyForm{Title: "x"})
	cancel()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	c.Wait()

	if len(w.plans[j.ID]) != 1 {
		t.Errorf("plan = %v, want one step", w.plans[j.ID])
	}
}
