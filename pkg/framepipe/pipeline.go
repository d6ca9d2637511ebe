// Package framepipe turns a sequence of RGB(A) pixel buffers into a muxed
// H.264 video track.
//
// A Pipeline owns the intermediate pictures, the encoder scratch buffer and
// the container handle. Frames are converted to YUV420, encoded as
// self-contained keyframes and appended to the track with one timescale tick
// per frame. The parameter sets of the last submitted frame become the
// track's sample entry when the pipeline is closed.
//
// A Pipeline is not safe for concurrent use.
package framepipe

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/framemux/pkg/adapters/logger"
	"github.com/user/framemux/pkg/colorconv"
	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
)

// DefaultFrameRate is the frame rate used by callers that do not choose one.
const DefaultFrameRate = 25

// MaxFrameMacroblocks bounds the frame size accepted by Initialize. It is the
// MaxFS limit of H.264 level 5.1.
const MaxFrameMacroblocks = 36864

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Messages are tagged with the "framepipe" component.
func WithLogger(l ports.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l.WithComponent("framepipe")
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// Pipeline converts, encodes and muxes frames into a single video track.
type Pipeline struct {
	opener   ports.ContainerOpener
	encoder  ports.FrameEncoder
	logger   ports.Logger
	observer Observer

	state     State
	path      string
	width     int
	height    int
	frameRate int

	container ports.Container
	track     ports.Track

	rgb     *colorconv.Picture
	yuv     *colorconv.Picture
	scratch []byte

	sps, pps [][]byte

	frameCounter int64
	encodedBytes int64
}

// New creates an uninitialized pipeline that writes through opener and
// compresses with encoder.
func New(opener ports.ContainerOpener, encoder ports.FrameEncoder, opts ...Option) *Pipeline {
	p := &Pipeline{
		opener:   opener,
		encoder:  encoder,
		logger:   logger.NewNoop(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Initialize opens the container at path and creates its video track.
// frameRate is both the frame rate and the track timescale.
func (p *Pipeline) Initialize(path string, width, height, frameRate int) error {
	if p.state != StateUninitialized {
		return fmt.Errorf("%w: initialize in state %s", ErrInvalidState, p.state)
	}
	if width <= 0 || height <= 0 || frameRate <= 0 {
		return fmt.Errorf("%w: %dx%d at %d fps", ErrInvalidDimensions, width, height, frameRate)
	}
	if mbs := ((width + 15) / 16) * ((height + 15) / 16); mbs > MaxFrameMacroblocks {
		return fmt.Errorf("%w: %dx%d needs %d macroblocks, limit is %d",
			ErrInvalidDimensions, width, height, mbs, MaxFrameMacroblocks)
	}

	container, err := p.opener.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIOFailure, path, err)
	}
	track, err := container.AddVideoTrack(width, height, frameRate)
	if err != nil {
		if cerr := container.Close(); cerr != nil {
			p.logger.Warn("Failed to close %s: %v", path, cerr)
		}
		return fmt.Errorf("%w: add video track: %w", ErrIOFailure, err)
	}

	p.path = path
	p.width = width
	p.height = height
	p.frameRate = frameRate
	p.container = container
	p.track = track
	p.scratch = make([]byte, 0, width*height*6)
	p.frameCounter = 0
	p.encodedBytes = 0
	p.state = StateInitialized

	p.logger.Debug("Opened %s (%dx%d at %d fps)", path, width, height, frameRate)
	p.observer.OnInitialize(Info{
		Path:          path,
		Width:         width,
		Height:        height,
		FrameRate:     frameRate,
		FrameDuration: p.FrameDuration(),
	})
	return nil
}

// ConvertFrame converts buf to YUV420. The returned picture is owned by the
// pipeline and is overwritten by the next call.
func (p *Pipeline) ConvertFrame(buf pixel.Buffer) (*colorconv.Picture, error) {
	if p.state != StateInitialized {
		return nil, fmt.Errorf("%w: convert in state %s", ErrInvalidState, p.state)
	}
	if buf == nil {
		return nil, fmt.Errorf("%w: no frame", ErrEncodeFailure)
	}
	if buf.Width() != p.width || buf.Height() != p.height {
		return nil, fmt.Errorf("%w: frame is %dx%d, pipeline is %dx%d",
			ErrEncodeFailure, buf.Width(), buf.Height(), p.width, p.height)
	}
	if f := buf.Format(); f != pixel.FormatRGBA8888 && f != pixel.FormatRGB888 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	if p.rgb == nil {
		p.rgb = colorconv.NewPicture(p.width, p.height, colorconv.RGB)
		p.yuv = colorconv.NewPicture(p.width, p.height, colorconv.YUV420)
	}

	if err := colorconv.Convert(buf, p.rgb, p.yuv); err != nil {
		if errors.Is(err, colorconv.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("%w: convert: %w", ErrEncodeFailure, err)
	}
	return p.yuv, nil
}

// SubmitFrame encodes pic and appends it to the track as the next frame.
// On failure the frame counter and the parameter sets are unchanged.
func (p *Pipeline) SubmitFrame(pic *colorconv.Picture) error {
	if p.state != StateInitialized {
		return fmt.Errorf("%w: submit in state %s", ErrInvalidState, p.state)
	}
	if !pic.Matches(p.width, p.height, colorconv.YUV420) {
		return fmt.Errorf("%w: picture does not match %dx%d yuv420", ErrEncodeFailure, p.width, p.height)
	}

	encoded, err := p.encoder.Encode(p.scratch[:0], pic)
	if err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrEncodeFailure, p.frameCounter, err)
	}
	if len(encoded) == 0 {
		return fmt.Errorf("%w: frame %d: encoder produced no data", ErrEncodeFailure, p.frameCounter)
	}
	p.scratch = encoded

	prevSPS, prevPPS := p.sps, p.pps
	sps, pps := p.encoder.ParameterSets(encoded)
	p.sps, p.pps = cloneUnits(sps), cloneUnits(pps)

	n := p.frameCounter
	pkt := ports.Packet{
		Data:              encoded,
		PresentationIndex: n,
		DecodeIndex:       n,
		Duration:          1,
		Timescale:         int64(p.frameRate),
		Keyframe:          true,
		DisplayOrder:      n,
	}
	if err := p.track.Append(pkt); err != nil {
		p.sps, p.pps = prevSPS, prevPPS
		return fmt.Errorf("%w: append frame %d: %w", ErrIOFailure, n, err)
	}

	p.frameCounter++
	p.encodedBytes += int64(len(encoded))

	p.logger.Debug("Encoded frame %d (%d bytes)", n, len(encoded))
	p.observer.OnFrame(FrameEvent{
		Index:         n,
		Bytes:         len(encoded),
		Keyframe:      true,
		ParameterSets: len(sps) + len(pps),
	})
	return nil
}

// EncodeFrame converts buf and submits the result.
func (p *Pipeline) EncodeFrame(buf pixel.Buffer) error {
	pic, err := p.ConvertFrame(buf)
	if err != nil {
		return err
	}
	return p.SubmitFrame(pic)
}

// Close writes the sample entry and the container index, then closes the
// container. The pipeline is closed and its buffers released even when an
// error is returned. Closing a pipeline that has no frames fails with
// ErrEncodeFailure.
func (p *Pipeline) Close() error {
	if p.state != StateInitialized {
		return fmt.Errorf("%w: close in state %s", ErrInvalidState, p.state)
	}

	err := p.finish()
	if cerr := p.container.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: close %s: %w", ErrIOFailure, p.path, cerr)
	}

	stats := p.Stats()
	p.rgb, p.yuv, p.scratch = nil, nil, nil
	p.sps, p.pps = nil, nil
	p.container, p.track = nil, nil
	p.state = StateClosed

	if err != nil {
		p.logger.Debug("Closed %s with error: %v", p.path, err)
	} else {
		p.logger.Debug("Closed %s after %d frames", p.path, stats.Frames)
	}
	p.observer.OnClose(stats, err)
	return err
}

func (p *Pipeline) finish() error {
	if p.frameCounter == 0 || len(p.sps) == 0 || len(p.pps) == 0 {
		return fmt.Errorf("%w: no parameter sets after %d frames", ErrEncodeFailure, p.frameCounter)
	}
	if err := p.track.SetSampleEntry(p.sps, p.pps); err != nil {
		return fmt.Errorf("%w: sample entry: %w", ErrEncodeFailure, err)
	}
	if err := p.container.Finalize(); err != nil {
		return fmt.Errorf("%w: finalize %s: %w", ErrIOFailure, p.path, err)
	}
	return nil
}

// State returns the lifecycle state.
func (p *Pipeline) State() State { return p.state }

// FrameCount returns the number of frames submitted successfully.
func (p *Pipeline) FrameCount() int64 { return p.frameCounter }

// Width returns the frame width fixed by Initialize.
func (p *Pipeline) Width() int { return p.width }

// Height returns the frame height fixed by Initialize.
func (p *Pipeline) Height() int { return p.height }

// FrameRate returns the frame rate fixed by Initialize.
func (p *Pipeline) FrameRate() int { return p.frameRate }

// FrameDuration returns the presentation duration of one frame, or 0 before
// Initialize.
func (p *Pipeline) FrameDuration() time.Duration {
	if p.frameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(p.frameRate)
}

// Stats returns counters for the frames written so far.
func (p *Pipeline) Stats() Stats {
	s := Stats{Frames: p.frameCounter, EncodedBytes: p.encodedBytes}
	if p.frameRate > 0 {
		s.Duration = time.Duration(p.frameCounter) * time.Second / time.Duration(p.frameRate)
	}
	return s
}

func cloneUnits(units [][]byte) [][]byte {
	if len(units) == 0 {
		return nil
	}
	out := make([][]byte, len(units))
	for i, u := range units {
		out[i] = append([]byte(nil), u...)
	}
	return out
}
