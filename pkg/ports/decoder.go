package ports

import (
	"image"
	"io"
)

// VideoFrame is a decoded video frame with timing information.
type VideoFrame struct {
	Image       image.Image
	TimestampMs int
	Duration    int // milliseconds
}

// VideoDecoder reads frames back from a written movie.
type VideoDecoder interface {
	// ReadFrames reads and decodes frames from a video file.
	ReadFrames(path string) ([]VideoFrame, error)

	// ReadFramesFromReader reads and decodes frames from an io.ReadSeeker.
	ReadFramesFromReader(reader io.ReadSeeker) ([]VideoFrame, error)

	// Close releases decoder resources.
	Close()
}
