package mock

import (
	"context"

	"github.com/mwalter/cardcrawl"
)

var _ cardcrawl.TableWriter = (*TableWriter)(nil)

// TableWriter is a mock implementation of cardcrawl.TableWriter.
type TableWriter struct {
	WriteTableFn func(ctx context.Context, columns, textColumns []string, records []cardcrawl.Record) error
}

func (w *TableWriter) WriteTable(ctx context.Context, columns, textColumns []string, records []cardcrawl.Record) error {
	return w.WriteTableFn(ctx, columns, textColumns, records)
}

var _ cardcrawl.RunService = (*RunService)(nil)

// RunService is a mock implementation of cardcrawl.RunService.
type RunService struct {
	CreateRunFn      func(ctx context.Context, run *cardcrawl.Run) error
	ArchiveRecordsFn func(ctx context.Context, runID string, columns []string, records []cardcrawl.Record) error
	FindRunsFn       func(ctx context.Context, source string) ([]*cardcrawl.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *cardcrawl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) ArchiveRecords(ctx context.Context, runID string, columns []string, records []cardcrawl.Record) error {
	return s.ArchiveRecordsFn(ctx, runID, columns, records)
}

func (s *RunService) FindRuns(ctx context.Context, source string) ([]*cardcrawl.Run, error) {
	return s.FindRunsFn(ctx, source)
}
