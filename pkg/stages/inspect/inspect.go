// Package inspect implements the stage that reports on a written movie.
package inspect

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/user/framemux/pkg/pipeline"
	"github.com/user/framemux/pkg/ports"
)

// Stage reads the video track summary of a movie and optionally saves one
// decoded frame as PNG.
type Stage struct {
	inspector ports.MovieInspector
	decoder   ports.VideoDecoder // nil disables snapshots
	renderer  ports.Renderer
	fs        ports.FileSystem
	logger    ports.Logger
}

// New creates a new inspect stage. decoder and renderer are only used for
// snapshots and may be nil otherwise.
func New(inspector ports.MovieInspector, decoder ports.VideoDecoder, renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		inspector: inspector,
		decoder:   decoder,
		renderer:  renderer,
		fs:        fs,
		logger:    logger.WithComponent("inspect"),
	}
}

// Execute inspects input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.InspectInput) (pipeline.InspectResult, error) {
	result := pipeline.InspectResult{Path: input.Path}

	info, err := s.inspector.Inspect(input.Path)
	if err != nil {
		return result, fmt.Errorf("inspect %s: %w", input.Path, err)
	}

	result.Codec = info.Codec
	result.Width = info.Width
	result.Height = info.Height
	result.Timescale = info.Timescale
	result.Samples = info.SampleCount
	result.SyncSamples = info.SyncSamples
	result.FrameRate = info.FrameRate
	result.Duration = time.Duration(math.Round(info.Duration * float64(time.Second)))
	result.Profile = info.Profile
	result.Level = info.Level

	s.logger.Debug("Inspected %s: %s %dx%d, %d samples", input.Path, info.Codec, info.Width, info.Height, info.SampleCount)

	if input.Snapshot == "" {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := s.snapshot(input); err != nil {
		return result, err
	}
	result.Snapshot = input.Snapshot
	return result, nil
}

func (s *Stage) snapshot(input pipeline.InspectInput) error {
	if s.decoder == nil || s.renderer == nil {
		return fmt.Errorf("snapshot: no decoder available")
	}
	if input.SnapshotFrame < 0 {
		return fmt.Errorf("snapshot: invalid frame %d", input.SnapshotFrame)
	}

	frames, err := s.decoder.ReadFrames(input.Path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if input.SnapshotFrame >= len(frames) {
		return fmt.Errorf("snapshot: frame %d not available (%d decoded)", input.SnapshotFrame, len(frames))
	}

	data, err := s.renderer.EncodeImage(frames[input.SnapshotFrame].Image, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	if err := s.fs.WriteFile(input.Snapshot, data); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	s.logger.Info("Snapshot saved: %s", input.Snapshot)
	return nil
}

var _ pipeline.Stage[pipeline.InspectInput, pipeline.InspectResult] = (*Stage)(nil)
