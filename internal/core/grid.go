package core

import "fmt"

// Grid stores a fixed-size matrix of cell states indexed [column][row]. The
// backing slice is column-major so a column is a contiguous run of rows.
type Grid struct {
	cols, rows int
	gen        uint64
	data       []bool
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	return &Grid{cols: cols, rows: rows, data: make([]bool, cols*rows)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.cols, H: g.rows} }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Generation identifies which simulation step produced this grid.
func (g *Grid) Generation() uint64 { return g.gen }

// InBounds reports whether (col, row) addresses a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Index returns the linear slice index for (col, row).
func (g *Grid) Index(col, row int) int { return col*g.rows + row }

// Alive reports the state of a cell. Out-of-range cells read as dead.
func (g *Grid) Alive(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.data[g.Index(col, row)]
}

// Set assigns the state of a single cell.
func (g *Grid) Set(col, row int, alive bool) error {
	if !g.InBounds(col, row) {
		return g.rangeErr(col, row)
	}
	g.data[g.Index(col, row)] = alive
	return nil
}

// Toggle flips a single cell.
func (g *Grid) Toggle(col, row int) error {
	if !g.InBounds(col, row) {
		return g.rangeErr(col, row)
	}
	i := g.Index(col, row)
	g.data[i] = !g.data[i]
	return nil
}

// Next allocates an empty grid of the same size stamped with the following
// generation number.
func (g *Grid) Next() *Grid {
	n := NewGrid(g.cols, g.rows)
	n.gen = g.gen + 1
	return n
}

// Clone returns a deep copy, generation included.
func (g *Grid) Clone() *Grid {
	c := &Grid{cols: g.cols, rows: g.rows, gen: g.gen, data: make([]bool, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Equal reports whether both grids have the same size and cell states. The
// generation number is not compared.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.cols != o.cols || g.rows != o.rows {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Population counts the live cells.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.data {
		if v {
			n++
		}
	}
	return n
}

// LiveCells lists live cells ordered by column, then row.
func (g *Grid) LiveCells() []Cell {
	var cells []Cell
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			if g.data[g.Index(col, row)] {
				cells = append(cells, Cell{Col: col, Row: row})
			}
		}
	}
	return cells
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = false
	}
}

func (g *Grid) rangeErr(col, row int) error {
	return fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", col, row, g.cols, g.rows, ErrOutOfRange)
}
