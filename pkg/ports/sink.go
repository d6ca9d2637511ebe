package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving the frames fed to the encoder and run metadata.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSourceFrame saves a source frame before color conversion.
	SaveSourceFrame(index int, img image.Image) error

	// SaveTrackJSON saves the inspected track of the written movie as JSON.
	SaveTrackJSON(data []byte) error

	// SaveRunJSON saves the run settings and results as JSON.
	SaveRunJSON(data []byte) error
}
