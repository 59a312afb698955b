package wfc

import "errors"

var (
	// ErrInvalidSize is returned for grids with a non-positive dimension.
	ErrInvalidSize = errors.New("wfc: invalid grid size")

	// ErrEmptyTable is returned for an adjacency table with no tiles.
	ErrEmptyTable = errors.New("wfc: adjacency table has no tiles")

	// ErrNoSolution is returned by Run when its iteration or reset budget is
	// exhausted before every cell collapsed.
	ErrNoSolution = errors.New("wfc: no solution found within budget")

	// ErrBoundaryContradiction is returned when boundary shaping alone
	// leaves a cell with no possible tile. The tile set cannot fill the
	// volume at all.
	ErrBoundaryContradiction = errors.New("wfc: boundary constraints are contradictory")

	// ErrBadSentinel is returned when the empty tile index is outside the table.
	ErrBadSentinel = errors.New("wfc: empty tile index out of range")
)
