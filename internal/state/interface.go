package state

import (
	"context"
	"io"

	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/internal/kv"
	"github.com/ShayCichocki/jrny/pkg/models"
)

// JourneyLister lists and administers journeys outside the coordinator.
type JourneyLister interface {
	ListJourneys(ctx context.Context, userID string) ([]models.Journey, error)
	SetStatus(ctx context.Context, id string, status models.JourneyStatus) error
	ImportJourney(ctx context.Context, j *models.Journey) error
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// JourneyStore is everything the hosts need from journey persistence.
// It composes the interfaces the journey package defines at its boundary.
type JourneyStore interface {
	io.Closer
	Migrator
	journey.PlanStore
	journey.JourneyWriter
	JourneyLister
}

// Compile-time verification that DB implements all interfaces.
var (
	_ JourneyStore          = (*DB)(nil)
	_ journey.PlanStore     = (*DB)(nil)
	_ journey.JourneyWriter = (*DB)(nil)
	_ kv.Store              = (*KV)(nil)
)
