package ports

// ContainerOpener opens writable media containers.
type ContainerOpener interface {
	// Open creates or truncates the container at path.
	Open(path string) (Container, error)
}

// Container abstracts a media container being written.
type Container interface {
	// AddVideoTrack creates the compressed video track.
	AddVideoTrack(width, height, frameRate int) (Track, error)

	// Finalize writes the container header and index and flushes the output.
	Finalize() error

	// Close releases the underlying file.
	Close() error
}

// Track abstracts a compressed video track inside a Container.
type Track interface {
	// Append adds one compressed frame.
	Append(pkt Packet) error

	// SetSampleEntry sets the decoder configuration built from parameter sets.
	SetSampleEntry(sps, pps [][]byte) error
}

// Packet is one compressed frame with its timing metadata.
type Packet struct {
	Data              []byte // Annex B access unit
	PresentationIndex int64  // Presentation time in Timescale units
	DecodeIndex       int64  // Decode time in Timescale units
	Duration          int64  // Duration in Timescale units
	Timescale         int64  // Ticks per second
	Keyframe          bool
	DisplayOrder      int64 // Composition order of the frame
}

// MovieInspector reads the video track summary of a written movie.
type MovieInspector interface {
	Inspect(path string) (*TrackInfo, error)
}

// TrackInfo summarizes the video track of a movie file.
type TrackInfo struct {
	Codec       string  // sample entry type, e.g. "avc1"
	Width       int     // from the visual sample entry
	Height      int     // from the visual sample entry
	Timescale   uint32  // media timescale
	SampleCount int     // number of samples
	FrameRate   float64 // samples per second over the media duration
	Duration    float64 // seconds
	SyncSamples int     // keyframes; all samples when there is no stss
	SPSCount    int     // SPS units in avcC
	PPSCount    int     // PPS units in avcC
	Profile     uint32  // profile_idc of the first SPS, 0 when unknown
	Level       uint32  // level_idc of the first SPS
	Fragmented  bool
}
