package grid

import (
	"context"
	"sync"
)

// MemoryGateway is an in-memory Gateway used by tests and local dry runs.
// Rows are stored as they would render in the spreadsheet; ClearRange only
// supports wiping the whole working area, which is all the engine uses.
type MemoryGateway struct {
	mu       sync.Mutex
	surfaces map[string][][]string

	// Ops records gateway calls in order ("ReadRow", "WriteRow", ...).
	Ops []string
	// Fail, when set, is consulted before every call and may inject an error.
	Fail func(op string) error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{surfaces: make(map[string][][]string)}
}

func (g *MemoryGateway) enter(op string) error {
	g.Ops = append(g.Ops, op)
	if g.Fail != nil {
		return g.Fail(op)
	}
	return nil
}

func (g *MemoryGateway) ReadColumn(_ context.Context, surface, column string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter("ReadColumn"); err != nil {
		return nil, err
	}

	col := columnOffset(column)
	rows := g.surfaces[surface]
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			out = append(out, row[col])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

func (g *MemoryGateway) ReadRow(_ context.Context, surface string, row int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter("ReadRow"); err != nil {
		return nil, err
	}

	rows := g.surfaces[surface]
	if row < 1 || row > len(rows) {
		return nil, nil
	}
	out := make([]string, len(rows[row-1]))
	copy(out, rows[row-1])
	return out, nil
}

func (g *MemoryGateway) WriteRow(_ context.Context, surface string, row int, values []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter("WriteRow"); err != nil {
		return err
	}
	g.setRow(surface, row, values)
	return nil
}

func (g *MemoryGateway) WriteHeaderRow(_ context.Context, surface string, values []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter("WriteHeaderRow"); err != nil {
		return err
	}
	g.setRow(surface, headerRowIndex, values)
	return nil
}

func (g *MemoryGateway) AppendRows(_ context.Context, surface string, rows [][]string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter("AppendRows"); err != nil {
		return err
	}
	for _, row := range rows {
		copied := make([]string, len(row))
		copy(copied, row)
		g.surfaces[surface] = append(g.surfaces[surface], copied)
	}
	return nil
}

func (g *MemoryGateway) ClearRange(_ context.Context, surface, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter("ClearRange"); err != nil {
		return err
	}
	g.surfaces[surface] = nil
	return nil
}

// Rows returns a copy of the surface content for assertions.
func (g *MemoryGateway) Rows(surface string) [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := g.surfaces[surface]
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		copy(out[i], row)
	}
	return out
}

func (g *MemoryGateway) setRow(surface string, row int, values []string) {
	for len(g.surfaces[surface]) < row {
		g.surfaces[surface] = append(g.surfaces[surface], nil)
	}
	copied := make([]string, len(values))
	copy(copied, values)
	g.surfaces[surface][row-1] = copied
}

func columnOffset(column string) int {
	if column == "" {
		return 0
	}
	return int(column[0] - 'A')
}
