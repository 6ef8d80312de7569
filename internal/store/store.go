// Package store persists cases, evidence, transcripts and simulations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

var (
	// ErrNotFound is returned when a case or simulation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStale is returned when a write was computed from a case that has
	// since lost evidence.
	ErrStale = errors.New("case changed while the action was running")
)

// Repository defines the persistence operations used by the services.
type Repository interface {
	// CreateCase inserts an empty case.
	CreateCase(ctx context.Context, c *domain.Case) error

	// GetCase loads a case with its evidence in insertion order.
	GetCase(ctx context.Context, id string) (*domain.Case, error)

	// AddEvidence appends an item to its case and assigns Seq.
	AddEvidence(ctx context.Context, item *domain.EvidenceItem) error

	// GetTranscripts returns cached audio transcripts keyed by evidence ID.
	GetTranscripts(ctx context.Context, caseID string) (map[string]string, error)

	// SaveCase updates the case row and upserts transcripts in one transaction.
	// It fails with ErrStale when c.BriefItems exceeds the stored evidence.
	SaveCase(ctx context.Context, c *domain.Case, transcripts map[string]string) error

	// ResetCase deletes evidence and transcripts and stores the cleared case.
	ResetCase(ctx context.Context, c *domain.Case) error

	// CreateSimulation inserts a new simulation.
	CreateSimulation(ctx context.Context, sim *domain.Simulation) error

	// GetSimulation loads a simulation with its turns.
	GetSimulation(ctx context.Context, id string) (*domain.Simulation, error)

	// SaveSimulation stores the simulation row and replaces its turns.
	SaveSimulation(ctx context.Context, sim *domain.Simulation) error

	// AcquireLease claims name for owner until ttl from now. It reports false
	// when another owner holds an unexpired lease. The holder renews by
	// calling it again.
	AcquireLease(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)

	// ReleaseLease drops the lease if owner still holds it.
	ReleaseLease(ctx context.Context, name, owner string) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
