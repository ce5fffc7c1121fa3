package core

import "errors"

var (
	// ErrOutOfRange reports a cell index outside the grid bounds.
	ErrOutOfRange = errors.New("cell index out of range")
	// ErrSurfaceUnavailable reports a paint or input pass that ran while no
	// raster surface was attached.
	ErrSurfaceUnavailable = errors.New("raster surface unavailable")
)

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Cell addresses one grid cell.
type Cell struct {
	Col int
	Row int
}
