package models

import "errors"

var (
	// ErrInvalidSnapshot is returned for negative sizes or capacities, or a
	// capacity smaller than the size on a capacity-backed kind.
	ErrInvalidSnapshot = errors.New("ERR invalid snapshot")

	// ErrUnsupportedKind is returned for a kind outside the modeled set.
	ErrUnsupportedKind = errors.New("ERR unsupported container kind")
)
