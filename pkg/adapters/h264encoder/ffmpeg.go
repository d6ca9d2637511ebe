package h264encoder

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/user/framemux/pkg/annexb"
	"github.com/user/framemux/pkg/colorconv"
	"github.com/user/framemux/pkg/ports"
)

// customFFmpegPath overrides the ffmpeg lookup when set.
var customFFmpegPath string

// SetFFmpegPath sets a custom path to the ffmpeg binary.
// An empty path restores the default lookup.
func SetFFmpegPath(path string) {
	customFFmpegPath = path
}

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg in PATH and common locations.
// Priority: 1) customFFmpegPath (set via SetFFmpegPath), 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	if customFFmpegPath != "" {
		if _, err := os.Stat(customFFmpegPath); err == nil {
			return customFFmpegPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, customFFmpegPath)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// FFmpegEncoder encodes each picture with a separate libx264 run over raw
// yuv420p input. Every access unit is an IDR picture with in-band SPS and PPS.
type FFmpegEncoder struct {
	ffmpegPath    string
	width, height int
	fps           int

	input  bytes.Buffer
	output bytes.Buffer
	stderr bytes.Buffer
}

// NewFFmpegEncoder creates an ffmpeg-backed encoder. libx264 needs even
// dimensions for yuv420p input.
func NewFFmpegEncoder(width, height, fps int) (*FFmpegEncoder, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d (libx264 needs positive even sizes)", ErrInvalidDimensions, width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", ErrInvalidDimensions, fps)
	}

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	return &FFmpegEncoder{
		ffmpegPath: ffmpegPath,
		width:      width,
		height:     height,
		fps:        fps,
	}, nil
}

func (e *FFmpegEncoder) args() []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "yuv420p",
		"-s", fmt.Sprintf("%dx%d", e.width, e.height),
		"-r", strconv.Itoa(e.fps),
		"-i", "pipe:0",
		"-frames:v", "1",
		"-c:v", "libx264",
		"-g", "1",
		"-bf", "0",
		"-profile:v", "baseline",
		"-f", "h264",
		"pipe:1",
	}
}

// Encode appends the Annex B access unit for pic to dst.
func (e *FFmpegEncoder) Encode(dst []byte, pic *colorconv.Picture) ([]byte, error) {
	if e == nil || e.ffmpegPath == "" {
		return dst, ErrNotInitialized
	}
	if pic == nil || pic.ColorSpace != colorconv.YUV420 {
		return dst, ErrInvalidPicture
	}
	if pic.Width != e.width || pic.Height != e.height {
		return dst, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, pic.Width, pic.Height, e.width, e.height)
	}
	if !pic.Matches(e.width, e.height, colorconv.YUV420) {
		return dst, fmt.Errorf("%w: plane sizes do not match %dx%d", ErrInvalidPicture, e.width, e.height)
	}

	e.input.Reset()
	e.output.Reset()
	e.stderr.Reset()
	for i, plane := range pic.Planes {
		e.input.Write(plane[:pic.PlaneWidth(i)*pic.PlaneHeight(i)])
	}

	cmd := exec.Command(e.ffmpegPath, e.args()...)
	cmd.Stdin = &e.input
	cmd.Stdout = &e.output
	cmd.Stderr = &e.stderr

	if err := cmd.Run(); err != nil {
		return dst, fmt.Errorf("%w: ffmpeg: %w\nstderr: %s", ErrEncodingFailed, err, e.stderr.String())
	}
	if e.output.Len() == 0 {
		return dst, fmt.Errorf("%w: ffmpeg produced no output", ErrEncodingFailed)
	}

	return append(dst, e.output.Bytes()...), nil
}

// ParameterSets returns the SPS and PPS NAL units carried by an access unit.
func (e *FFmpegEncoder) ParameterSets(encoded []byte) (sps, pps [][]byte) {
	return annexb.ParameterSets(encoded)
}

var _ ports.FrameEncoder = (*FFmpegEncoder)(nil)
