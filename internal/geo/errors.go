package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidZone is returned for a zone outside [1,60] or a missing/unknown hemisphere.
	ErrInvalidZone = errors.New("invalid UTM zone")

	// ErrOutOfProjectionRange is returned when a point cannot be represented in UTM.
	ErrOutOfProjectionRange = errors.New("outside UTM projection range")

	// ErrOutOfRange is returned for coordinates outside their valid numeric range.
	ErrOutOfRange = fmt.Errorf("%w: coordinate out of range", ErrOutOfProjectionRange)
)
