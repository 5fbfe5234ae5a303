package thermal

import "errors"

// Domain errors for simulation runs.
var (
	// ErrBadParameters indicates a parameter set that cannot describe a grid.
	ErrBadParameters = errors.New("thermal: parameters out of valid bounds")

	// ErrDiverged indicates the field picked up NaN or Inf values, usually
	// because dt was set above the stability bound.
	ErrDiverged = errors.New("thermal: field diverged (NaN or Inf detected)")

	// ErrNoSnapshot indicates a requested step index was not recorded.
	ErrNoSnapshot = errors.New("thermal: no snapshot recorded for step")
)
