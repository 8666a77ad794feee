package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"higher-pleasures/internal/grid"
)

func TestColumns_AppendOnly(t *testing.T) {
	cols := grid.NewColumns([]string{"Running", "Reading"})

	pos, ok := cols.Index("Running")
	assert.True(t, ok)
	assert.Equal(t, 0, pos)

	// New categories land after every existing one.
	assert.Equal(t, 2, cols.Append("Yoga"))

	// Re-appending an existing category keeps its position.
	assert.Equal(t, 1, cols.Append("Reading"))
	pos, ok = cols.Index("Reading")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)

	assert.Equal(t, []string{"Running", "Reading", "Yoga"}, cols.Names())
	assert.Equal(t, []string{"Date", "Running", "Reading", "Yoga"}, cols.HeaderRow())
}

func TestColumns_CaseSensitive(t *testing.T) {
	cols := grid.NewColumns([]string{"Running"})

	_, ok := cols.Index("running")
	assert.False(t, ok, "category match must be case sensitive")
	assert.Equal(t, 1, cols.Append("running"))
	assert.Equal(t, 2, cols.Len())
}

func TestColumns_DuplicateHeaderCellsCollapse(t *testing.T) {
	// A hand-edited sheet may carry duplicate header cells; the first
	// occurrence wins and keeps its column.
	cols := grid.NewColumns([]string{"Running", "Running"})
	assert.Equal(t, 1, cols.Len())
	pos, ok := cols.Index("Running")
	assert.True(t, ok)
	assert.Equal(t, 0, pos)
}
