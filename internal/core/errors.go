package core

import "errors"

// Sentinel errors shared by the growth engines. All of them end the current run.
var (
	// ErrInvalidSize indicates grid dimensions too small for the one-cell margin.
	ErrInvalidSize = errors.New("growth: grid must be at least 3x3")
	// ErrInvalidConfiguration indicates an unusable engine configuration, such as
	// DLA radii not satisfying spawn < jump < kill.
	ErrInvalidConfiguration = errors.New("growth: invalid configuration")
	// ErrOutOfBounds indicates a coordinate outside the grid, or a configured
	// seed outside the growth interior.
	ErrOutOfBounds = errors.New("growth: coordinate out of bounds")
	// ErrFrontierExhausted indicates no free interior cell touches the aggregate:
	// Eden has no frontier left and DLA walkers have nowhere to stick.
	ErrFrontierExhausted = errors.New("growth: frontier exhausted")
	// ErrSpawnBlocked indicates every cell of a DLA landing circle is occupied.
	ErrSpawnBlocked = errors.New("growth: landing circle fully occupied")
	// ErrUnknownSim indicates a registry lookup for an unregistered simulation.
	ErrUnknownSim = errors.New("growth: unknown simulation")
	// ErrSizeMismatch indicates two grids or snapshots of different dimensions.
	ErrSizeMismatch = errors.New("growth: size mismatch")
)
