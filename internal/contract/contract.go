// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/schema"
)

// ContextProvider builds the evaluation context for a classified URL.
// This allows the scoring pipeline to be tested without network access.
type ContextProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// Supports reports whether the provider can describe the target.
	Supports(target schema.Target) bool

	// Fetch gathers metadata for the target into a fresh context.
	Fetch(ctx context.Context, target schema.Target) (engine.Context, error)
}

// HistoryManager defines the interface for managing the run history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking runs and storing evaluations.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordEvaluation stores one scored URL for a run
	RecordEvaluation(runID int64, record schema.EvaluationRecord) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalURLs int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by id
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllEvaluations returns every recorded evaluation ordered by run and URL
	GetAllEvaluations() ([]schema.EvaluationRecord, error)

	// Close closes the underlying connection
	Close() error
}
