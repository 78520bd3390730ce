package cardcrawl

import (
	"context"
	"time"
)

// Run records one completed crawl of a single source.
type Run struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Pages     int           `json:"pages"`
	Skipped   int           `json:"skipped"`
	Records   int           `json:"records"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	return nil
}

// RunService archives crawl runs and their deduplicated records.
// Archiving is best-effort infrastructure around the pipeline: a failure
// here never discards the in-memory result.
type RunService interface {
	// CreateRun persists a run summary and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// ArchiveRecords persists a run's deduplicated records in order.
	ArchiveRecords(ctx context.Context, runID string, columns []string, records []Record) error

	// FindRuns returns archived runs, most recent first.
	FindRuns(ctx context.Context, source string) ([]*Run, error)
}
