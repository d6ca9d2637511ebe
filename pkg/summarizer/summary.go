package summarizer

import "time"

// Summary contains all data collected during an encode run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Frame source
	Source SourceInfo

	// Encoding settings
	Settings Settings

	// Video output details
	Video VideoInfo

	// Track read back from the written file, nil when not verified
	Track *TrackInfo
}

// SourceInfo describes where the frames came from.
type SourceInfo struct {
	Kind   string // mandelbrot, images or solid
	Detail string // e.g. the image directory
	Frames int    // frames available from the source
}

// Settings contains the encoding configuration.
type Settings struct {
	Encoder     string
	Fallback    bool // the requested encoder was replaced by the built-in one
	Width       int
	Height      int
	FPS         int
	PixelFormat string
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path         string
	FrameCount   int64
	Duration     time.Duration
	FileSize     int64
	EncodedBytes int64
}

// TrackInfo contains the inspected video track.
type TrackInfo struct {
	Codec       string
	Profile     uint32
	Level       uint32
	Samples     int
	SyncSamples int
	FrameRate   float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets frame source information.
func (b *Builder) WithSource(kind, detail string, frames int) *Builder {
	b.summary.Source = SourceInfo{
		Kind:   kind,
		Detail: detail,
		Frames: frames,
	}
	return b
}

// WithSettings sets encoding settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithTrack sets the inspected track.
func (b *Builder) WithTrack(track TrackInfo) *Builder {
	b.summary.Track = &track
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
