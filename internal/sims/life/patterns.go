package life

import (
	"fmt"
	"sort"

	"gol-canvas/internal/core"
)

// SeedOptions parameterizes the starting patterns.
type SeedOptions struct {
	Seed    int64
	Density float64
}

// Pattern writes a starting configuration into an all-dead grid.
type Pattern func(g *core.Grid, opts SeedOptions)

var patterns = map[string]Pattern{}

// Register adds a pattern under the provided name.
func Register(name string, p Pattern) {
	if name == "" || p == nil {
		return
	}
	patterns[name] = p
}

// Patterns lists the registered pattern names in sorted order.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seed clears g, applies the named pattern and then switches on every cell in
// extra. Extra cells outside the grid fail with core.ErrOutOfRange.
func Seed(g *core.Grid, name string, opts SeedOptions, extra []core.Cell) error {
	if name == "" {
		name = "blank"
	}
	p, ok := patterns[name]
	if !ok {
		return fmt.Errorf("unknown seed pattern %q", name)
	}
	g.Clear()
	p(g, opts)
	for _, c := range extra {
		if err := g.Set(c.Col, c.Row, true); err != nil {
			return fmt.Errorf("seed cell: %w", err)
		}
	}
	return nil
}

// stamp places offsets relative to the grid center. Offsets that do not fit
// are skipped so small grids still get a partial shape.
func stamp(g *core.Grid, offsets []core.Cell) {
	cc, cr := g.Columns()/2, g.Rows()/2
	for _, o := range offsets {
		_ = g.Set(cc+o.Col, cr+o.Row, true)
	}
}

func init() {
	Register("blank", func(*core.Grid, SeedOptions) {})
	Register("full", func(g *core.Grid, _ SeedOptions) {
		for col := 0; col < g.Columns(); col++ {
			for row := 0; row < g.Rows(); row++ {
				_ = g.Set(col, row, true)
			}
		}
	})
	Register("random", func(g *core.Grid, opts SeedOptions) {
		core.FillRandom(core.NewRNG(opts.Seed), g, opts.Density)
	})
	Register("blinker", func(g *core.Grid, _ SeedOptions) {
		stamp(g, []core.Cell{{Col: -1, Row: 0}, {Col: 0, Row: 0}, {Col: 1, Row: 0}})
	})
	Register("glider", func(g *core.Grid, _ SeedOptions) {
		stamp(g, []core.Cell{{Col: 0, Row: -1}, {Col: 1, Row: 0}, {Col: -1, Row: 1}, {Col: 0, Row: 1}, {Col: 1, Row: 1}})
	})
	Register("r-pentomino", func(g *core.Grid, _ SeedOptions) {
		stamp(g, []core.Cell{{Col: 0, Row: -1}, {Col: 1, Row: -1}, {Col: -1, Row: 0}, {Col: 0, Row: 0}, {Col: 0, Row: 1}})
	})
}
