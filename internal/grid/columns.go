package grid

// Columns is the ordered set of activity columns of one surface. Names are
// case sensitive, insertion order is column order, and an assigned position
// is never reused or reassigned; the only mutation is appending at the end.
type Columns struct {
	names []string
	index map[string]int
}

// NewColumns builds the column set from header cells in column order
// (excluding the "Date" label cell).
func NewColumns(names []string) *Columns {
	c := &Columns{index: make(map[string]int, len(names))}
	for _, name := range names {
		c.append(name)
	}
	return c
}

// Index returns the 0-based position of a category among the activity
// columns. The grid column is one higher, since column A holds the label.
func (c *Columns) Index(name string) (int, bool) {
	pos, ok := c.index[name]
	return pos, ok
}

// Append adds a category after all existing ones and returns its position.
// Appending an existing category returns its current position unchanged.
func (c *Columns) Append(name string) int {
	return c.append(name)
}

func (c *Columns) append(name string) int {
	if pos, ok := c.index[name]; ok {
		return pos
	}
	pos := len(c.names)
	c.names = append(c.names, name)
	c.index[name] = pos
	return pos
}

// Names returns the categories in column order.
func (c *Columns) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len is the number of activity columns.
func (c *Columns) Len() int { return len(c.names) }

// HeaderRow renders row 1: "Date" followed by the categories in order.
func (c *Columns) HeaderRow() []string {
	row := make([]string, 0, len(c.names)+1)
	row = append(row, dateHeader)
	row = append(row, c.names...)
	return row
}
