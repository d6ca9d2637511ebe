package pipeline

import (
	"time"

	"github.com/user/framemux/pkg/framesource"
	"github.com/user/framemux/pkg/pixel"
)

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput describes a movie to write.
type EncodeInput struct {
	Source framesource.Source
	Output string // MP4 path; parent directories are created
	Width  int
	Height int
	FPS    int
	Frames int          // frames to take from Source; 0 means all
	Format pixel.Format // pixmap format handed to Source (default: RGBA8888)
}

// EncodeResult summarizes a written movie.
type EncodeResult struct {
	Path         string
	Frames       int64
	EncodedBytes int64 // sum of access unit sizes
	FileSize     int64 // size of the MP4 file
	Duration     time.Duration
}

// =============================================================================
// Inspect Types
// =============================================================================

// InspectInput selects a movie to inspect.
type InspectInput struct {
	Path string

	// Snapshot, when set, receives frame SnapshotFrame as PNG.
	Snapshot      string
	SnapshotFrame int
}

// InspectResult describes the video track of an existing MP4 file.
type InspectResult struct {
	Path        string
	Codec       string
	Width       int
	Height      int
	Timescale   uint32
	Samples     int
	SyncSamples int
	FrameRate   float64
	Duration    time.Duration
	Profile     uint32 // from the first SPS, 0 when unknown
	Level       uint32
	Snapshot    string // written snapshot path, empty when none
}
