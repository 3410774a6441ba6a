package grid

import "errors"

var (
	// ErrNegativeOffset is returned by Window when either offset is below zero.
	ErrNegativeOffset = errors.New("negative window offset")

	// ErrOversizedWindow is returned by Window when the requested size exceeds
	// the grid on either axis.
	ErrOversizedWindow = errors.New("window larger than grid")

	// ErrValidation is returned for malformed grids and patterns.
	ErrValidation = errors.New("invalid grid")
)
