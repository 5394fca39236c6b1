package sprite

import (
	"errors"

	"spriteproc/raster"
)

// Failure classes for a single image. They are matched with errors.Is; the
// wrapped error carries the file and the underlying cause.
var (
	ErrInputNotFound     = raster.ErrInputNotFound
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrDecodeFailure     = raster.ErrDecodeFailure
	ErrUnwritableOutput  = errors.New("could not write output")
)
