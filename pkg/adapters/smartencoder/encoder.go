// Package smartencoder selects an H.264 frame encoder backend with fallback
// support.
package smartencoder

import (
	"errors"
	"fmt"

	"github.com/user/framemux/pkg/adapters/h264encoder"
	"github.com/user/framemux/pkg/ports"
)

// Backend represents the encoding backend used.
type Backend string

const (
	// BackendAuto prefers ffmpeg and falls back to the built-in encoder.
	BackendAuto Backend = "auto"
	// BackendPCM is the built-in pure Go I_PCM encoder.
	BackendPCM Backend = "pcm"
	// BackendFFmpeg runs libx264 through an external ffmpeg process.
	BackendFFmpeg Backend = "ffmpeg"
)

// ParseBackend parses a backend name. The empty string selects BackendPCM.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendPCM:
		return BackendPCM, nil
	case BackendFFmpeg, BackendAuto:
		return Backend(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Info contains information about the selected encoder.
type Info struct {
	// Backend is the encoding backend being used.
	Backend Backend
	// RequestedBackend is the backend that was originally requested.
	RequestedBackend Backend
	// FallbackUsed indicates whether a fallback occurred.
	FallbackUsed bool
}

// Options configures the smart encoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// AllowFallback enables fallback to the built-in encoder when ffmpeg
	// was requested explicitly but cannot be used.
	AllowFallback bool
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

var (
	// ErrNoEncoderAvailable is returned when no encoder is available.
	ErrNoEncoderAvailable = errors.New("smartencoder: no encoder available")

	// ErrUnknownBackend is returned for an unknown backend name.
	ErrUnknownBackend = errors.New("smartencoder: unknown backend")
)

// New creates a frame encoder for pictures of the given size.
//
// The selection flow:
//  1. BackendPCM always uses the built-in encoder.
//  2. BackendFFmpeg uses ffmpeg; when it cannot be created the built-in
//     encoder is used only if AllowFallback is set.
//  3. BackendAuto tries ffmpeg and silently falls back to the built-in encoder.
func New(backend Backend, width, height, fps int, opts Options) (ports.FrameEncoder, Info, error) {
	if opts.FFmpegPath != "" {
		h264encoder.SetFFmpegPath(opts.FFmpegPath)
	}

	info := Info{RequestedBackend: backend}

	switch backend {
	case BackendPCM, "":
		enc, err := h264encoder.NewPCMEncoder(width, height)
		if err != nil {
			return nil, Info{}, err
		}
		info.Backend = BackendPCM
		return enc, info, nil

	case BackendFFmpeg, BackendAuto:
		enc, err := h264encoder.NewFFmpegEncoder(width, height, fps)
		if err == nil {
			info.Backend = BackendFFmpeg
			return enc, info, nil
		}
		if backend == BackendFFmpeg && !opts.AllowFallback {
			return nil, Info{}, fmt.Errorf("%w: %w", ErrNoEncoderAvailable, err)
		}
		if backend == BackendFFmpeg && opts.Logger != nil {
			opts.Logger.Warn("ffmpeg encoder not available (%s), falling back to built-in encoder", err)
		}
		return fallback(width, height, info)

	default:
		return nil, Info{}, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func fallback(width, height int, info Info) (ports.FrameEncoder, Info, error) {
	enc, err := h264encoder.NewPCMEncoder(width, height)
	if err != nil {
		return nil, Info{}, err
	}
	info.Backend = BackendPCM
	info.FallbackUsed = true
	return enc, info, nil
}

// IsFFmpegAvailable checks if FFmpeg-based H.264 encoding is available.
func IsFFmpegAvailable() bool {
	return h264encoder.IsFFmpegAvailable()
}
