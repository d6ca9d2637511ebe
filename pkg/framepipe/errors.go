package framepipe

import "errors"

var (
	// ErrInvalidDimensions is returned for a non-positive width, height or frame rate.
	ErrInvalidDimensions = errors.New("framepipe: invalid dimensions")

	// ErrUnsupportedFormat is returned for pixel formats the converter cannot unpack.
	ErrUnsupportedFormat = errors.New("framepipe: unsupported pixel format")

	// ErrIOFailure is returned when the container cannot be opened, written or closed.
	ErrIOFailure = errors.New("framepipe: container i/o failure")

	// ErrEncodeFailure is returned when a frame cannot be encoded or the track
	// cannot be finalized.
	ErrEncodeFailure = errors.New("framepipe: encode failure")

	// ErrInvalidState is returned when an operation is called in the wrong lifecycle state.
	ErrInvalidState = errors.New("framepipe: invalid state")
)
