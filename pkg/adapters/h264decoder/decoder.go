// Package h264decoder decodes H.264 access units to images with an external
// ffmpeg process.
package h264decoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"sync"

	"github.com/user/framemux/pkg/adapters/h264encoder"
)

var (
	// ErrNotInitialized is returned when decoder methods are called before initialization.
	ErrNotInitialized = errors.New("h264decoder: decoder not initialized")

	// ErrDecodeFailed is returned when decoding a frame fails.
	ErrDecodeFailed = errors.New("h264decoder: decode failed")
)

// Decoder decodes self-contained Annex B access units. Every frame must
// carry its own SPS and PPS, which holds for the IDR-only streams written
// by this module.
type Decoder struct {
	mu          sync.Mutex
	ffmpegPath  string
	initialized bool

	stdout bytes.Buffer
	stderr bytes.Buffer
}

// New creates a new H.264 decoder.
func New() *Decoder {
	return &Decoder{}
}

// IsAvailable reports whether ffmpeg can be found for decoding.
func IsAvailable() bool {
	return h264encoder.IsFFmpegAvailable()
}

// Init locates ffmpeg. It uses the same lookup as the ffmpeg encoder.
func (d *Decoder) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ffmpegPath, err := h264encoder.FindFFmpeg()
	if err != nil {
		return err
	}
	d.ffmpegPath = ffmpegPath
	d.initialized = true
	return nil
}

// DecodeFrame decodes a single H.264 frame from Annex B format.
func (d *Decoder) DecodeFrame(data []byte) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return nil, ErrNotInitialized
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty access unit", ErrDecodeFailed)
	}

	d.stdout.Reset()
	d.stderr.Reset()

	cmd := exec.Command(d.ffmpegPath,
		"-hide_banner",
		"-loglevel", "error",
		"-f", "h264",
		"-i", "pipe:0",
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &d.stdout
	cmd.Stderr = &d.stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffmpeg: %w\nstderr: %s", ErrDecodeFailed, err, d.stderr.String())
	}

	img, err := png.Decode(&d.stdout)
	if err != nil {
		return nil, fmt.Errorf("%w: decode png: %w", ErrDecodeFailed, err)
	}
	return img, nil
}

// Close releases decoder resources.
func (d *Decoder) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = false
}
