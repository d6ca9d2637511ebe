// Package orchestrator coordinates the encode and verification stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/user/framemux/pkg/framesource"
	"github.com/user/framemux/pkg/pipeline"
	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
)

// ErrVerifyFailed is returned when the written movie does not match what was
// encoded.
var ErrVerifyFailed = errors.New("orchestrator: output verification failed")

// Config contains all configuration for the orchestrator.
type Config struct {
	// Output
	OutputPath string `json:"output"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FPS        int    `json:"fps"`
	Frames     int    `json:"frames"` // 0 takes every frame of the source

	// Encoding
	Encoder     string       `json:"encoder"` // informational, recorded in the run summary
	PixelFormat pixel.Format `json:"-"`

	// Verify reads the written movie back and compares it with the encode result.
	Verify bool `json:"verify"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Width:       512,
		Height:      512,
		FPS:         25,
		PixelFormat: pixel.FormatRGBA8888,
		Verify:      true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	encodeStage  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	inspectStage pipeline.Stage[pipeline.InspectInput, pipeline.InspectResult]
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator. inspectStage may be nil when verification
// is never requested.
func New(
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	inspectStage pipeline.Stage[pipeline.InspectInput, pipeline.InspectResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		encodeStage:  encodeStage,
		inspectStage: inspectStage,
		sink:         sink,
		logger:       logger,
	}
}

// Run encodes src and, when requested, verifies the written file.
func (o *Orchestrator) Run(ctx context.Context, src framesource.Source, config Config) (RunResult, error) {
	o.logger.Info("Starting pipeline")

	// 1. Encode
	encoded, err := o.encodeStage.Execute(ctx, o.buildEncodeInput(src, config))
	if err != nil {
		o.logger.Error("Failed to encode video: %s", err)
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}
	result := RunResult{Config: config, Encode: encoded}

	// 2. Verify (optional)
	if config.Verify || o.sink.Enabled() {
		if o.inspectStage == nil {
			return result, fmt.Errorf("inspect stage: not configured")
		}
		track, err := o.inspectStage.Execute(ctx, pipeline.InspectInput{Path: config.OutputPath})
		if err != nil {
			o.logger.Error("Failed to inspect output: %s", err)
			return result, fmt.Errorf("inspect stage: %w", err)
		}
		result.Track = &track

		if o.sink.Enabled() {
			if data, err := json.MarshalIndent(track, "", "  "); err == nil {
				if err := o.sink.SaveTrackJSON(data); err != nil {
					o.logger.Warn("Failed to save debug output: %v", err)
				}
			}
		}

		if config.Verify {
			if err := verify(config, encoded, track); err != nil {
				o.logger.Error("Failed to verify output: %s", err)
				return result, err
			}
			o.logger.Info("Verified %s: %d samples, %dx%d", config.OutputPath, track.Samples, track.Width, track.Height)
		}
	}

	// Save run debug output
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			if err := o.sink.SaveRunJSON(data); err != nil {
				o.logger.Warn("Failed to save debug output: %v", err)
			}
		}
	}

	o.logger.Info("Pipeline completed successfully")
	return result, nil
}

func (o *Orchestrator) buildEncodeInput(src framesource.Source, config Config) pipeline.EncodeInput {
	return pipeline.EncodeInput{
		Source: src,
		Output: config.OutputPath,
		Width:  config.Width,
		Height: config.Height,
		FPS:    config.FPS,
		Frames: config.Frames,
		Format: config.PixelFormat,
	}
}

// verify compares the inspected track with what the encode stage wrote.
func verify(config Config, encoded pipeline.EncodeResult, track pipeline.InspectResult) error {
	if int64(track.Samples) != encoded.Frames {
		return fmt.Errorf("%w: %d samples, encoded %d frames", ErrVerifyFailed, track.Samples, encoded.Frames)
	}
	if track.Width != config.Width || track.Height != config.Height {
		return fmt.Errorf("%w: track is %dx%d, encoded %dx%d", ErrVerifyFailed, track.Width, track.Height, config.Width, config.Height)
	}
	if track.Timescale != uint32(config.FPS) {
		return fmt.Errorf("%w: timescale %d, encoded at %d fps", ErrVerifyFailed, track.Timescale, config.FPS)
	}
	return nil
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	Config Config                  `json:"config"`
	Encode pipeline.EncodeResult   `json:"encode"`
	Track  *pipeline.InspectResult `json:"track,omitempty"` // nil without verification
}
