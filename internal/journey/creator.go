package journey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ShayCichocki/jrny/internal/logging"
	"github.com/ShayCichocki/jrny/pkg/models"
)

// ErrTitleRequired is returned when a journey is created without a title.
var ErrTitleRequired = errors.New("journey title is required")

// DefaultEnrichTimeout bounds a single background plan generation.
const DefaultEnrichTimeout = 2 * time.Minute

// JourneyWriter is the store surface used when creating journeys.
type JourneyWriter interface {
	// CreateJourney inserts j, assigning j.ID when it is empty.
	CreateJourney(ctx context.Context, j *models.Journey) error
	// SetGeneratedContent stores a generated plan and daily tasks. A plan
	// that is already non-empty is left alone.
	SetGeneratedContent(ctx context.Context, id string, plan models.Plan, dailyTasks []string) error
}

// PlanGenerator produces a step plan and daily tasks for a journey.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.PlanBreakdown, error)
}

// CreatorConfig configures a Creator.
type CreatorConfig struct {
	Store JourneyWriter
	// Generator may be nil, in which case journeys keep an empty plan.
	Generator PlanGenerator
	Logger    *logging.Logger
	UserID    string
	// Timeout bounds each background enrichment. Zero means DefaultEnrichTimeout.
	Timeout time.Duration
	// Now overrides time.Now.
	Now func() time.Time
}

// Creator inserts new journeys and fills in their plans in the background.
type Creator struct {
	store     JourneyWriter
	generator PlanGenerator
	logger    *logging.Logger
	userID    string
	timeout   time.Duration
	now       func() time.Time

	wg sync.WaitGroup
}

// NewCreator creates a Creator.
func NewCreator(cfg CreatorConfig) *Creator {
	c := &Creator{
		store:     cfg.Store,
		generator: cfg.Generator,
		logger:    cfg.Logger.With("creator"),
		userID:    cfg.UserID,
		timeout:   cfg.Timeout,
		now:       cfg.Now,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultEnrichTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Create validates the form and inserts a Planned journey with an empty plan.
// When a generator is configured, the plan is generated in the background;
// generation failures are logged and never fail creation.
func (c *Creator) Create(ctx context.Context, form models.JourneyForm) (*models.Journey, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !form.Priority.Valid() {
		return nil, fmt.Errorf("create journey: invalid priority %q", form.Priority)
	}

	now := c.now()
	j := &models.Journey{
		UserID:      c.userID,
		Title:       title,
		Description: strings.TrimSpace(form.Description),
		Status:      models.JourneyPlanned,
		Progress:    0,
		Priority:    form.Priority,
		Duration:    strings.TrimSpace(form.Duration),
		EndDate:     form.EndDate,
		Plan:        models.Plan{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.store.CreateJourney(ctx, j); err != nil {
		return nil, fmt.Errorf("create journey: %w", err)
	}
	c.logger.Log("created journey %s %q", j.ID, j.Title)

	if c.generator != nil {
		snapshot := j.Clone()
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
			defer cancel()
			if err := c.Enrich(genCtx, snapshot); err != nil {
				c.logger.Log("journey %s: enrichment failed: %v", snapshot.ID, err)
			}
		}()
	}

	return j, nil
}

// Enrich generates a plan for j and stores it with the daily tasks.
// An empty generator response is not an error.
func (c *Creator) Enrich(ctx context.Context, j *models.Journey) error {
	if c.generator == nil {
		return nil
	}

	breakdown, err := c.generator.GeneratePlan(ctx, models.RequestFromJourney(j))
	if err != nil {
		return fmt.Errorf("generate plan: %w", err)
	}
	if breakdown.Empty() {
		c.logger.Log("journey %s: generator returned nothing", j.ID)
		return nil
	}

	plan := models.PlanFromTexts(breakdown.Plan)
	if err := c.store.SetGeneratedContent(ctx, j.ID, plan, breakdown.DailyTasks); err != nil {
		return fmt.Errorf("store generated plan: %w", err)
	}
	c.logger.Log("journey %s: stored %d steps, %d daily tasks", j.ID, len(plan), len(breakdown.DailyTasks))
	return nil
}

// Wait blocks until all background enrichments have finished.
func (c *Creator) Wait() {
	c.wg.Wait()
}
