package h264encoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called on a zero or closed encoder.
	ErrNotInitialized = errors.New("h264encoder: encoder not initialized")

	// ErrInvalidDimensions is returned when an encoder is created with a non-positive size.
	ErrInvalidDimensions = errors.New("h264encoder: invalid dimensions")

	// ErrDimensionMismatch is returned when a picture's size differs from the encoder's.
	ErrDimensionMismatch = errors.New("h264encoder: picture size does not match encoder")

	// ErrInvalidPicture is returned when a picture is not a complete YUV420 picture.
	ErrInvalidPicture = errors.New("h264encoder: picture is not yuv420")

	// ErrEncodingFailed is returned when encoding a frame fails.
	ErrEncodingFailed = errors.New("h264encoder: encoding failed")

	// ErrFFmpegNotFound is returned when ffmpeg is not found.
	ErrFFmpegNotFound = errors.New("h264encoder: ffmpeg not found in PATH")
)
