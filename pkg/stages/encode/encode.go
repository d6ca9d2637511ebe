// Package encode implements the stage that writes a frame source to an MP4 file.
package encode

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/framemux/pkg/framepipe"
	"github.com/user/framemux/pkg/pipeline"
	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
)

// ErrNoFrames is returned when the input selects no frames.
var ErrNoFrames = errors.New("encode: no frames to encode")

// Stage drives a frame source through a framepipe.Pipeline.
type Stage struct {
	opener   ports.ContainerOpener
	encoder  ports.FrameEncoder
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
	observer framepipe.Observer
}

// New creates a new encode stage. sink and observer may be nil.
func New(opener ports.ContainerOpener, encoder ports.FrameEncoder, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, observer framepipe.Observer) *Stage {
	return &Stage{
		opener:   opener,
		encoder:  encoder,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("encode"),
		observer: observer,
	}
}

// Execute encodes the selected frames. The pipeline is closed on every
// return path; a frame or cancellation error takes precedence over a close
// error.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{Path: input.Output}

	if input.Source == nil {
		return result, fmt.Errorf("encode: no frame source")
	}
	frames := input.Frames
	if frames <= 0 || frames > input.Source.Len() {
		frames = input.Source.Len()
	}
	if frames == 0 {
		return result, ErrNoFrames
	}
	format := input.Format
	if format == pixel.FormatUnknown {
		format = pixel.FormatRGBA8888
	}

	if dir := filepath.Dir(input.Output); dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir); err != nil {
			return result, fmt.Errorf("create output directory: %w", err)
		}
	}

	opts := []framepipe.Option{framepipe.WithLogger(s.logger)}
	if s.observer != nil {
		opts = append(opts, framepipe.WithObserver(s.observer))
	}
	p := framepipe.New(s.opener, s.encoder, opts...)
	if err := p.Initialize(input.Output, input.Width, input.Height, input.FPS); err != nil {
		return result, err
	}

	s.logger.Info("Encoding %d frames at %d fps", frames, input.FPS)

	buf := pixel.NewPixmap(input.Width, input.Height, format)
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.closeAfterError(p)
			return result, ctx.Err()
		default:
		}

		if err := input.Source.Frame(i, buf); err != nil {
			s.closeAfterError(p)
			return result, fmt.Errorf("render frame %d: %w", i, err)
		}
		if s.sink != nil && s.sink.Enabled() {
			if err := s.sink.SaveSourceFrame(i, buf.ToImage()); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %v", i, err)
			}
		}
		if err := p.EncodeFrame(buf); err != nil {
			s.closeAfterError(p)
			return result, fmt.Errorf("encode frame %d: %w", i, err)
		}
	}

	if err := p.Close(); err != nil {
		return result, err
	}

	stats := p.Stats()
	result.Frames = stats.Frames
	result.EncodedBytes = stats.EncodedBytes
	result.Duration = stats.Duration

	size, err := s.fs.Size(input.Output)
	if err != nil {
		return result, fmt.Errorf("stat output: %w", err)
	}
	result.FileSize = size

	s.logger.Info("Video encoded: %d bytes", size)
	return result, nil
}

func (s *Stage) closeAfterError(p *framepipe.Pipeline) {
	if err := p.Close(); err != nil {
		s.logger.Debug("Close after error: %v", err)
	}
}

var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)
