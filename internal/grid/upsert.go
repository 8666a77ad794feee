package grid

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Upsert merges durationHours into the cell for (date, category) on the
// surface: the category gets a column if it lacks one, the date row is
// located by exact label match, the row is padded with zeros up to the
// target column, and the duration is added onto the existing value (blank
// counts as 0). The whole row is written back in one call.
//
// The read-modify-write cycle is not atomic: two concurrent upserts against
// the same surface can lose one contribution. Callers serialize writes per
// surface.
func (e *Engine) Upsert(ctx context.Context, surface string, date time.Time, category string, durationHours float64) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if durationHours < 0 {
		return &ValidationError{Field: "duration", Reason: fmt.Sprintf("must not be negative, got %v", durationHours)}
	}

	cols, err := e.EnsureColumn(ctx, surface, category)
	if err != nil {
		return err
	}

	rowIndex, err := e.findDateRow(ctx, surface, date)
	if err != nil {
		return err
	}

	row, err := e.gw.ReadRow(ctx, surface, rowIndex)
	if err != nil {
		return err
	}

	pos, _ := cols.Index(category)
	col := pos + 1 // cell 0 holds the date label

	row = padRow(row, col)
	existing, err := cellValue(row[col])
	if err != nil {
		return fmt.Errorf("row %d on %q: %w", rowIndex, surface, err)
	}
	row[col] = formatCell(existing + durationHours)

	return e.gw.WriteRow(ctx, surface, rowIndex, row)
}

// findDateRow scans column A for the exact date label. Rows are 1-indexed;
// the header in row 1 can never match a date label.
func (e *Engine) findDateRow(ctx context.Context, surface string, date time.Time) (int, error) {
	labels, err := e.gw.ReadColumn(ctx, surface, labelColumn)
	if err != nil {
		return 0, err
	}

	want := DateLabel(date)
	for i, label := range labels {
		if label == want {
			return i + 1, nil
		}
	}
	return 0, &RowNotFoundError{Surface: surface, Label: want}
}

// padRow extends the row with zero cells up to and including the target
// column so every addressed cell has a defined value.
func padRow(row []string, col int) []string {
	for len(row) <= col {
		row = append(row, "0")
	}
	return row
}

// cellValue parses an accumulated cell; blank means exactly 0.
func cellValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cell value %q is not numeric", s)
	}
	return v, nil
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
