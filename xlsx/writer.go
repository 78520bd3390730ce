// Package xlsx persists crawl results as Excel artifacts.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwalter/cardcrawl"
	"github.com/xuri/excelize/v2"
)

// Ensure Writer implements cardcrawl.TableWriter at compile time.
var _ cardcrawl.TableWriter = (*Writer)(nil)

// sheetName is the single worksheet an artifact carries.
const sheetName = "Sheet1"

// Writer writes records to a single-sheet xlsx artifact. The artifact is
// built in a temp file next to the destination and renamed into place, so
// a failed write never leaves a partial or truncated artifact behind.
type Writer struct {
	// Path is the destination artifact path.
	Path string
}

// NewWriter creates a Writer targeting the given path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// WriteTable writes a header row followed by one row per record, in the
// given column order. Columns listed in textColumns are written as strings
// under an enforced text number format so leading zeros and plus signs
// survive a spreadsheet round trip.
//
// When the destination exists but cannot be written (held open by a
// spreadsheet application, or not a regular file), WriteTable returns an
// ELOCKED error and leaves the existing artifact untouched.
func (w *Writer) WriteTable(ctx context.Context, columns, textColumns []string, records []cardcrawl.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.probe(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	textCols := make(map[string]bool, len(textColumns))
	for _, col := range textColumns {
		textCols[col] = true
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	textFmt := "@"
	textStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &textFmt})
	if err != nil {
		return fmt.Errorf("creating text style: %w", err)
	}
	for i, col := range columns {
		if !textCols[col] {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolving column %d: %w", i+1, err)
		}
		if err := f.SetColStyle(sheetName, name, textStyle); err != nil {
			return fmt.Errorf("styling column %s: %w", name, err)
		}
	}

	for r, rec := range records {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("resolving cell (%d,%d): %w", c+1, r+2, err)
			}
			if err := f.SetCellStr(sheetName, cell, rec[col]); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	return w.commit(f)
}

// probe verifies an existing destination can be overwritten before any
// artifact data is produced. A missing destination passes.
func (w *Writer) probe() error {
	info, err := os.Stat(w.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return cardcrawl.Errorf(cardcrawl.ELOCKED, "cannot access %s: %v", w.Path, err)
	}
	if info.IsDir() {
		return cardcrawl.Errorf(cardcrawl.ELOCKED, "cannot overwrite %s: destination is a directory", w.Path)
	}
	f, err := os.OpenFile(w.Path, os.O_WRONLY, 0)
	if err != nil {
		return cardcrawl.Errorf(cardcrawl.ELOCKED, "cannot overwrite %s: close it in other programs and retry", w.Path)
	}
	return f.Close()
}

// commit saves the workbook to a temp file in the destination directory and
// renames it over the destination.
func (w *Writer) commit(f *excelize.File) error {
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, ".cardcrawl-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp artifact: %w", err)
	}

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving artifact: %w", err)
	}
	if err := os.Rename(tmpPath, w.Path); err != nil {
		os.Remove(tmpPath)
		return cardcrawl.Errorf(cardcrawl.ELOCKED, "cannot replace %s: %v", w.Path, err)
	}
	return nil
}
