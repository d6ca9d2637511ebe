package h264decoder

import (
	"fmt"
	"io"
	"os"

	"github.com/user/framemux/pkg/adapters/mp4muxer"
	"github.com/user/framemux/pkg/ports"
)

// MP4Reader reads and decodes H.264 frames from a progressive MP4 file.
type MP4Reader struct {
	decoder *Decoder
	max     int
}

// NewMP4Reader creates a reader that decodes at most max frames per file.
// max <= 0 decodes every frame.
func NewMP4Reader(max int) *MP4Reader {
	return &MP4Reader{
		decoder: New(),
		max:     max,
	}
}

// ReadFrames reads frames from an MP4 file.
func (r *MP4Reader) ReadFrames(path string) ([]ports.VideoFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return r.ReadFramesFromReader(f)
}

// ReadFramesFromReader reads frames from an io.ReadSeeker.
func (r *MP4Reader) ReadFramesFromReader(reader io.ReadSeeker) ([]ports.VideoFrame, error) {
	samples, err := mp4muxer.ReadFramesFromReader(reader, r.max)
	if err != nil {
		return nil, err
	}

	if err := r.decoder.Init(); err != nil {
		return nil, fmt.Errorf("init decoder: %w", err)
	}
	defer r.decoder.Close()

	frames := make([]ports.VideoFrame, 0, len(samples))
	for i, s := range samples {
		img, err := r.decoder.DecodeFrame(s.Data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, ports.VideoFrame{
			Image:       img,
			TimestampMs: int(s.DecodeTime * 1000 / uint64(s.Timescale)),
			Duration:    int(uint64(s.Duration) * 1000 / uint64(s.Timescale)),
		})
	}

	return frames, nil
}

// Close releases decoder resources.
func (r *MP4Reader) Close() {
	r.decoder.Close()
}

var _ ports.VideoDecoder = (*MP4Reader)(nil)
