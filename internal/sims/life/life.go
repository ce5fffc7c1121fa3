// Package life implements the Conway's Game of Life generation step.
package life

import (
	"fmt"
	"strings"

	"gol-canvas/internal/core"
)

// NeighborPolicy selects how the Moore neighborhood is formed at the grid edge.
type NeighborPolicy int

const (
	// EdgeClamp clamps each neighbor offset to the nearest valid index. At an
	// edge the clamped index equals the cell's own coordinate, so the scan
	// revisits cells: an edge cell counts itself and its edge neighbors twice,
	// a corner cell counts itself three times.
	EdgeClamp NeighborPolicy = iota
	// Bounded ignores neighbors that fall outside the grid.
	Bounded
	// Wrap treats the grid as a torus.
	Wrap
)

var policyNames = map[NeighborPolicy]string{
	EdgeClamp: "edge-clamp",
	Bounded:   "bounded",
	Wrap:      "wrap",
}

func (p NeighborPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("NeighborPolicy(%d)", int(p))
}

// ParsePolicy maps a config name to a NeighborPolicy.
func ParsePolicy(name string) (NeighborPolicy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return EdgeClamp, nil
	}
	for p, n := range policyNames {
		if n == key {
			return p, nil
		}
	}
	return EdgeClamp, fmt.Errorf("unknown neighbor policy %q", name)
}

// CountNeighbors returns the number of live cells around (col, row) under the
// given policy. The cell itself is only counted when EdgeClamp folds an
// offset back onto it.
func CountNeighbors(g *core.Grid, col, row int, policy NeighborPolicy) int {
	w, h := g.Columns(), g.Rows()
	n := 0
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			if dc == 0 && dr == 0 {
				continue
			}
			nc, nr := col+dc, row+dr
			switch policy {
			case EdgeClamp:
				nc = clamp(nc, 0, w-1)
				nr = clamp(nr, 0, h-1)
			case Wrap:
				nc = (nc%w + w) % w
				nr = (nr%h + h) % h
			}
			// Alive bounds-checks, which drops Bounded offsets past the edge.
			if g.Alive(nc, nr) {
				n++
			}
		}
	}
	return n
}

// Rule applies B3/S23: a live cell survives with 2 or 3 neighbors, a dead cell
// is born with exactly 3.
func Rule(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Step computes the next generation. The input grid is never modified; the
// result is a fresh grid stamped with the following generation number.
func Step(g *core.Grid, policy NeighborPolicy) *core.Grid {
	next := g.Next()
	for col := 0; col < g.Columns(); col++ {
		for row := 0; row < g.Rows(); row++ {
			if Rule(g.Alive(col, row), CountNeighbors(g, col, row, policy)) {
				_ = next.Set(col, row, true)
			}
		}
	}
	return next
}

// Stepper binds a policy so the step can be handed to core.State.Advance.
func Stepper(policy NeighborPolicy) func(*core.Grid) *core.Grid {
	return func(g *core.Grid) *core.Grid { return Step(g, policy) }
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
