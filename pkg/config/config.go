// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/framemux/pkg/adapters/smartencoder"
	"github.com/user/framemux/pkg/framesource"
	"github.com/user/framemux/pkg/pixel"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the full configuration for framemux.
type Config struct {
	// Output
	OutputPath string `yaml:"output"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Frames     int    `yaml:"frames"` // 0 takes every frame of the source

	// Encoding
	Encoder       string `yaml:"encoder"` // pcm, ffmpeg or auto
	FFmpegPath    string `yaml:"ffmpeg_path"`
	AllowFallback bool   `yaml:"allow_fallback"`
	PixelFormat   string `yaml:"pixel_format"`

	// Verify reads the written movie back after encoding.
	Verify bool `yaml:"verify"`

	// Reports
	SummaryPath string      `yaml:"summary"` // Markdown report, empty for none
	Debug       DebugConfig `yaml:"debug"`

	// Sources
	Mandelbrot MandelbrotConfig `yaml:"mandelbrot"`
	Images     ImagesConfig     `yaml:"images"`
	Solid      SolidConfig      `yaml:"solid"`

	// Logging
	Log LogConfig `yaml:"log"`
}

// MandelbrotConfig configures the zooming fractal source.
type MandelbrotConfig struct {
	CenterX       float64 `yaml:"center_x"`
	CenterY       float64 `yaml:"center_y"`
	StartSize     float64 `yaml:"start_size"`
	Step          float64 `yaml:"step"`
	MaxIterations int     `yaml:"max_iterations"`
	Label         bool    `yaml:"label"`
}

// ImagesConfig configures the image sequence source.
type ImagesConfig struct {
	Dir string `yaml:"dir"`
}

// SolidConfig configures the single color source.
type SolidConfig struct {
	Color string `yaml:"color"`
}

// DebugConfig configures the debug dump of source frames and run metadata.
type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Every   int    `yaml:"every"` // keep every n-th source frame
}

// LogConfig configures log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Defaults returns a Config with default values.
func Defaults() Config {
	m := framesource.DefaultMandelbrotOptions()
	return Config{
		OutputPath: "out.mp4",
		Width:      512,
		Height:     512,
		FPS:        25,
		Frames:     m.Frames,

		Encoder:     string(smartencoder.BackendPCM),
		PixelFormat: pixel.FormatRGBA8888.String(),
		Verify:      true,

		Debug: DebugConfig{
			Dir:   "./debug",
			Every: 1,
		},

		Mandelbrot: MandelbrotConfig{
			CenterX:       m.CenterX,
			CenterY:       m.CenterY,
			StartSize:     m.StartSize,
			Step:          m.Step,
			MaxIterations: m.MaxIterations,
		},
		Solid: SolidConfig{
			Color: "#336699",
		},

		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values shared by every encode command.
func (c Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: size %dx%d must be even for yuv420 encoding", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Frames)
	}
	if _, err := smartencoder.ParseBackend(c.Encoder); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if pixel.ParseFormat(c.PixelFormat) == pixel.FormatUnknown {
		return fmt.Errorf("%w: pixel format %q", ErrInvalidConfig, c.PixelFormat)
	}
	if c.Debug.Enabled && c.Debug.Dir == "" {
		return fmt.Errorf("%w: debug directory is empty", ErrInvalidConfig)
	}
	if c.Log.Format != "" && c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// MandelbrotOptions converts the fractal settings for framesource.
func (c Config) MandelbrotOptions() framesource.MandelbrotOptions {
	opts := framesource.DefaultMandelbrotOptions()
	if c.Frames > 0 {
		opts.Frames = c.Frames
	}
	opts.CenterX = c.Mandelbrot.CenterX
	opts.CenterY = c.Mandelbrot.CenterY
	if c.Mandelbrot.StartSize > 0 {
		opts.StartSize = c.Mandelbrot.StartSize
	}
	if c.Mandelbrot.Step != 0 {
		opts.Step = c.Mandelbrot.Step
	}
	if c.Mandelbrot.MaxIterations > 0 {
		opts.MaxIterations = c.Mandelbrot.MaxIterations
	}
	opts.Label = c.Mandelbrot.Label
	return opts
}

// ParseColor parses a hex color string ("#rrggbb" or "rrggbb") to
// color.Color. Malformed strings yield black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
