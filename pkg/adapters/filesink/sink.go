// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framemux/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	every    int
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink that keeps every n-th source frame. n <= 1
// keeps all frames.
func New(baseDir string, every int, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		every:    max(every, 1),
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSourceFrame saves a source frame as PNG. Frames whose index is not a
// multiple of the configured stride are skipped.
func (s *Sink) SaveSourceFrame(index int, img image.Image) error {
	if index%s.every != 0 {
		return nil
	}
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode source frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveTrackJSON saves the inspected track as JSON.
func (s *Sink) SaveTrackJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "track.json")
	return s.fs.WriteFile(path, data)
}

// SaveRunJSON saves the run settings and results as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "run.json")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
