package grid

import "context"

const (
	headerRowIndex = 1
	labelColumn    = "A"
	dateHeader     = "Date"
)

// Engine implements the reconciliation core over an injected Gateway. It
// keeps no state between calls: the header and row positions are re-read
// from the surface at the start of every operation, trading round trips for
// freshness.
//
// Calls against different surfaces are independent. Concurrent calls against
// the same surface are not coordinated; see Upsert.
type Engine struct {
	gw Gateway
}

func NewEngine(gw Gateway) *Engine {
	return &Engine{gw: gw}
}

// EnsureColumn guarantees the category occupies a header column and returns
// the resulting column set. A new category is appended after all existing
// ones; present categories are never reordered or removed.
func (e *Engine) EnsureColumn(ctx context.Context, surface, category string) (*Columns, error) {
	cols, err := e.readColumns(ctx, surface)
	if err != nil {
		return nil, err
	}

	if _, ok := cols.Index(category); ok {
		return cols, nil
	}

	cols.Append(category)
	if err := e.gw.WriteHeaderRow(ctx, surface, cols.HeaderRow()); err != nil {
		return nil, err
	}
	return cols, nil
}

func (e *Engine) readColumns(ctx context.Context, surface string) (*Columns, error) {
	header, err := e.gw.ReadRow(ctx, surface, headerRowIndex)
	if err != nil {
		return nil, err
	}
	if len(header) <= 1 {
		return NewColumns(nil), nil
	}
	return NewColumns(header[1:]), nil
}
