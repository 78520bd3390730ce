package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mwalter/cardcrawl"
)

// Compile-time interface verification.
var _ cardcrawl.RunService = (*RunService)(nil)

// RunService implements cardcrawl.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashRow computes xxHash of the record's values in column order and
// returns a hex string.
func hashRow(columns []string, rec cardcrawl.Record) string {
	d := xxhash.New()
	for _, col := range columns {
		d.WriteString(rec[col])
		d.Write([]byte{0x1f})
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, d.Sum64())
	return hex.EncodeToString(b)
}

// CreateRun persists a run summary and assigns its ID.
func (s *RunService) CreateRun(ctx context.Context, run *cardcrawl.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, started_at, duration_ms, pages, skipped, records)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.StartedAt.Format(time.RFC3339),
		run.Duration.Milliseconds(), run.Pages, run.Skipped, run.Records)

	return err
}

// ArchiveRecords persists a run's deduplicated records in order. Each row
// is stored as a JSON payload alongside a content hash over its values.
func (s *RunService) ArchiveRecords(ctx context.Context, runID string, columns []string, records []cardcrawl.Record) error {
	if runID == "" {
		return cardcrawl.Errorf(cardcrawl.EINVALID, "run id required")
	}

	for i, rec := range records {
		row, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO records (id, run_id, position, row, row_hash)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), runID, i, string(row), hashRow(columns, rec))
		if err != nil {
			return err
		}
	}
	return nil
}

// FindRuns retrieves archived runs, most recent first. An empty source
// matches all sources.
func (s *RunService) FindRuns(ctx context.Context, source string) ([]*cardcrawl.Run, error) {
	query := `
		SELECT id, source, started_at, duration_ms, pages, skipped, records
		FROM runs
	`
	var args []any
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY started_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*cardcrawl.Run
	for rows.Next() {
		var run cardcrawl.Run
		var startedAt string
		var durationMS int64

		if err := rows.Scan(&run.ID, &run.Source, &startedAt, &durationMS,
			&run.Pages, &run.Skipped, &run.Records); err != nil {
			return nil, err
		}

		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
