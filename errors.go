package xlgrid

import "errors"

var (
	// ErrOutOfRange is returned when a row or column lies outside the grid.
	ErrOutOfRange = errors.New("cell out of range")

	// ErrInvalidArgument is returned for negative indexes, malformed
	// addresses and non-positive grid dimensions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExportFailed wraps I/O errors raised while writing an export.
	ErrExportFailed = errors.New("export failed")
)
