package grid

import "context"

const (
	// appendBatchSize bounds how many skeleton rows go into one append call.
	appendBatchSize = 50
	// clearRange covers the whole working area of a surface.
	clearRange = "A1:Z1000"
)

// EnsureYearStructure guarantees the surface holds the full skeleton for a
// year: the header row plus one row per calendar day, each new ISO week
// preceded by its week-header row.
//
// Unless force is set, the current column-A content is compared against the
// expected sequence first and a matching surface is left untouched, so the
// call is idempotent. Any mismatch (length or content) triggers a full
// destructive rebuild: the surface is cleared, the header rewritten with no
// activity columns, and the skeleton appended in order.
func (e *Engine) EnsureYearStructure(ctx context.Context, surface string, year int, force bool) error {
	expected := YearLabels(year)

	if !force {
		current, err := e.gw.ReadColumn(ctx, surface, labelColumn)
		if err != nil {
			return err
		}
		if len(current) > 0 {
			current = current[1:] // skip the header row
		}
		if labelsEqual(current, expected) {
			return nil
		}
	}

	if err := e.gw.ClearRange(ctx, surface, clearRange); err != nil {
		return err
	}
	if err := e.gw.WriteHeaderRow(ctx, surface, []string{dateHeader}); err != nil {
		return err
	}

	var batch [][]string
	for _, label := range expected {
		batch = append(batch, []string{label})
		if len(batch) == appendBatchSize {
			if err := e.gw.AppendRows(ctx, surface, batch); err != nil {
				return err
			}
			batch = nil
		}
	}
	if len(batch) > 0 {
		if err := e.gw.AppendRows(ctx, surface, batch); err != nil {
			return err
		}
	}

	return nil
}

func labelsEqual(current, expected []string) bool {
	if len(current) != len(expected) {
		return false
	}
	for i := range expected {
		if current[i] != expected[i] {
			return false
		}
	}
	return true
}
