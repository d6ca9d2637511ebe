// Package main provides the CLI entry point for framemux.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framemux/pkg/adapters/filesink"
	"github.com/user/framemux/pkg/adapters/ggrenderer"
	"github.com/user/framemux/pkg/adapters/h264decoder"
	"github.com/user/framemux/pkg/adapters/h264encoder"
	"github.com/user/framemux/pkg/adapters/logger"
	"github.com/user/framemux/pkg/adapters/mp4muxer"
	"github.com/user/framemux/pkg/adapters/nullsink"
	"github.com/user/framemux/pkg/adapters/osfilesystem"
	"github.com/user/framemux/pkg/adapters/smartencoder"
	"github.com/user/framemux/pkg/config"
	"github.com/user/framemux/pkg/framesource"
	"github.com/user/framemux/pkg/orchestrator"
	"github.com/user/framemux/pkg/pipeline"
	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
	"github.com/user/framemux/pkg/stages/encode"
	"github.com/user/framemux/pkg/stages/inspect"
	"github.com/user/framemux/pkg/summarizer"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "framemux",
		Usage:       l10n.T("Encode pixel frames into H.264 MP4 movies"),
		Description: l10n.T("framemux converts RGB pixel frames to YUV420, encodes them as H.264 and writes an MP4 file."),
		Version:     version,
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: l10n.T("Configuration"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.StringFlag{
				Name:     "log-format",
				Usage:    l10n.T("Log format (console, json)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Commands: []*cli.Command{
			mandelbrotCommand(),
			imagesCommand(),
			solidCommand(),
			inspectCommand(),
			versionCommand(),
		},
	}
}

// encodeFlags are shared by every command that writes a movie.
func encodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output MP4 file path"),
			Category: l10n.T("Output"),
		},
		&cli.IntFlag{
			Name:     "width",
			Aliases:  []string{"W"},
			Usage:    l10n.T("Output video width (default: 512)"),
			Category: l10n.T("Output"),
		},
		&cli.IntFlag{
			Name:     "height",
			Aliases:  []string{"H"},
			Usage:    l10n.T("Output video height (default: 512)"),
			Category: l10n.T("Output"),
		},
		&cli.IntFlag{
			Name:     "fps",
			Aliases:  []string{"r"},
			Usage:    l10n.T("Frames per second (default: 25)"),
			Category: l10n.T("Output"),
		},
		&cli.IntFlag{
			Name:     "frames",
			Aliases:  []string{"n"},
			Usage:    l10n.T("Number of frames to encode (0 = all)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "encoder",
			Aliases:  []string{"e"},
			Usage:    l10n.T("H.264 encoder backend (pcm, ffmpeg, auto)"),
			Category: l10n.T("Encoding"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg-path",
			Usage:    l10n.T("Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)"),
			Category: l10n.T("Encoding"),
		},
		&cli.BoolFlag{
			Name:     "allow-fallback",
			Usage:    l10n.T("Fall back to the built-in encoder when ffmpeg is unavailable"),
			Category: l10n.T("Encoding"),
		},
		&cli.StringFlag{
			Name:     "pixel-format",
			Usage:    l10n.T("Pixel format of source frames (rgba8888, rgb888, rgb565, alpha)"),
			Category: l10n.T("Encoding"),
		},
		&cli.BoolFlag{
			Name:     "no-verify",
			Usage:    l10n.T("Skip reading the written movie back"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a Markdown report of the run to this path"),
			Category: l10n.T("Output"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save source frames and run metadata for inspection"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output (default: ./debug)"),
			Category: l10n.T("Debug"),
		},
		&cli.IntFlag{
			Name:     "debug-every",
			Usage:    l10n.T("Save every n-th source frame (default: 1)"),
			Category: l10n.T("Debug"),
		},
	}
}

func mandelbrotCommand() *cli.Command {
	return &cli.Command{
		Name:  "mandelbrot",
		Usage: l10n.T("Encode a zooming Mandelbrot animation"),
		Flags: append(encodeFlags(),
			&cli.Float64Flag{
				Name:     "center-x",
				Usage:    l10n.T("Real part of the zoom center"),
				Category: l10n.T("Source"),
			},
			&cli.Float64Flag{
				Name:     "center-y",
				Usage:    l10n.T("Imaginary part of the zoom center"),
				Category: l10n.T("Source"),
			},
			&cli.IntFlag{
				Name:     "iterations",
				Usage:    l10n.T("Maximum iterations per pixel (default: 192)"),
				Category: l10n.T("Source"),
			},
			&cli.BoolFlag{
				Name:     "label",
				Usage:    l10n.T("Draw the frame number on every frame"),
				Category: l10n.T("Source"),
			},
		),
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			if c.IsSet("center-x") {
				cfg.Mandelbrot.CenterX = c.Float64("center-x")
			}
			if c.IsSet("center-y") {
				cfg.Mandelbrot.CenterY = c.Float64("center-y")
			}
			if c.IsSet("iterations") {
				cfg.Mandelbrot.MaxIterations = c.Int("iterations")
			}
			if c.IsSet("label") {
				cfg.Mandelbrot.Label = c.Bool("label")
			}

			src := framesource.NewMandelbrot(cfg.MandelbrotOptions(), ggrenderer.New())
			detail := fmt.Sprintf("%g%+gi", cfg.Mandelbrot.CenterX, cfg.Mandelbrot.CenterY)
			return runEncode(c.Context, cfg, src, sourceDesc{"mandelbrot", detail}, log)
		},
	}
}

func imagesCommand() *cli.Command {
	return &cli.Command{
		Name:      "images",
		Usage:     l10n.T("Encode a directory of PNG or JPEG images"),
		ArgsUsage: "<dir>",
		Flags: append(encodeFlags(),
			&cli.BoolFlag{
				Name:     "source-size",
				Usage:    l10n.T("Use the size of the first image as the video size"),
				Category: l10n.T("Source"),
			},
		),
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			if dir := c.Args().First(); dir != "" {
				cfg.Images.Dir = dir
			}
			if cfg.Images.Dir == "" {
				return cli.Exit(l10n.T("an image directory is required"), 2)
			}

			src, err := framesource.NewImageSequence(osfilesystem.New(), ggrenderer.New(), cfg.Images.Dir)
			if err != nil {
				return err
			}
			if c.Bool("source-size") {
				w, h, err := src.Size()
				if err != nil {
					return err
				}
				cfg.Width, cfg.Height = w, h
			}
			log.Info("Found %d images in %s", src.Len(), cfg.Images.Dir)
			return runEncode(c.Context, cfg, src, sourceDesc{"images", cfg.Images.Dir}, log)
		},
	}
}

func solidCommand() *cli.Command {
	return &cli.Command{
		Name:  "solid",
		Usage: l10n.T("Encode frames of a single color"),
		Flags: append(encodeFlags(),
			&cli.StringFlag{
				Name:     "color",
				Usage:    l10n.T("Frame color (hex, e.g., #336699)"),
				Category: l10n.T("Source"),
			},
		),
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			if c.IsSet("color") {
				cfg.Solid.Color = c.String("color")
			}

			frames := cfg.Frames
			if frames == 0 {
				frames = cfg.FPS
			}
			src := &framesource.Solid{Color: config.ParseColor(cfg.Solid.Color), Frames: frames}
			return runEncode(c.Context, cfg, src, sourceDesc{"solid", cfg.Solid.Color}, log)
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     l10n.T("Show the video track of an MP4 file"),
		ArgsUsage: "<file.mp4>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: l10n.T("Save one decoded frame as PNG (requires ffmpeg)"),
			},
			&cli.IntFlag{
				Name:  "frame",
				Usage: l10n.T("Frame index for --snapshot"),
			},
			&cli.StringFlag{
				Name:  "ffmpeg-path",
				Usage: l10n.T("Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)"),
			},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := loadConfig(c)
			if err != nil {
				return err
			}
			path := c.Args().First()
			if path == "" {
				return cli.Exit(l10n.T("an MP4 file is required"), 2)
			}
			if c.IsSet("ffmpeg-path") {
				cfg.FFmpegPath = c.String("ffmpeg-path")
			}
			if cfg.FFmpegPath != "" {
				h264encoder.SetFFmpegPath(cfg.FFmpegPath)
			}

			var decoder ports.VideoDecoder
			if c.String("snapshot") != "" {
				reader := h264decoder.NewMP4Reader(c.Int("frame") + 1)
				defer reader.Close()
				decoder = reader
			}

			stage := inspect.New(mp4muxer.Inspector{}, decoder, ggrenderer.New(), osfilesystem.New(), log)
			result, err := stage.Execute(c.Context, pipeline.InspectInput{
				Path:          path,
				Snapshot:      c.String("snapshot"),
				SnapshotFrame: c.Int("frame"),
			})
			if err != nil {
				return err
			}
			printInspectResult(result)
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("framemux version %s", version))
			return nil
		},
	}
}

// loadConfig reads the configuration file and the global logging flags.
func loadConfig(c *cli.Context) (config.Config, ports.Logger, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return cfg, nil, fmt.Errorf("load config: %w", err)
		}
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	return cfg, newLogger(cfg.Log, c.Bool("quiet")), nil
}

// setup loads the configuration and applies the encode flags.
func setup(c *cli.Context) (config.Config, ports.Logger, error) {
	cfg, log, err := loadConfig(c)
	if err != nil {
		return cfg, nil, err
	}

	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("encoder") {
		cfg.Encoder = c.String("encoder")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("allow-fallback") {
		cfg.AllowFallback = c.Bool("allow-fallback")
	}
	if c.IsSet("pixel-format") {
		cfg.PixelFormat = c.String("pixel-format")
	}
	if c.Bool("no-verify") {
		cfg.Verify = false
	}
	if c.IsSet("summary") {
		cfg.SummaryPath = c.String("summary")
	}
	if c.IsSet("debug") {
		cfg.Debug.Enabled = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.Debug.Dir = c.String("debug-dir")
	}
	if c.IsSet("debug-every") {
		cfg.Debug.Every = c.Int("debug-every")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func newLogger(cfg config.LogConfig, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.Level)
	if logger.ParseFormat(cfg.Format) == logger.FormatJSON {
		return logger.NewLogrus(level, logger.FormatJSON, os.Stderr)
	}
	return logger.NewConsole(level)
}

// sourceDesc names a frame source in the run summary.
type sourceDesc struct {
	kind   string
	detail string
}

func runEncode(ctx context.Context, cfg config.Config, src framesource.Source, desc sourceDesc, log ports.Logger) error {
	backend, err := smartencoder.ParseBackend(cfg.Encoder)
	if err != nil {
		return err
	}
	encoder, info, err := smartencoder.New(backend, cfg.Width, cfg.Height, cfg.FPS, smartencoder.Options{
		FFmpegPath:    cfg.FFmpegPath,
		AllowFallback: cfg.AllowFallback,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	log.Info("Using %s encoder", info.Backend)

	frames := cfg.Frames
	if frames <= 0 || frames > src.Len() {
		frames = src.Len()
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink = nullsink.New()
	if cfg.Debug.Enabled {
		sink = filesink.New(cfg.Debug.Dir, cfg.Debug.Every, fs, renderer)
		log.Info("Debug output enabled: %s", cfg.Debug.Dir)
	}

	encodeStage := encode.New(mp4muxer.NewOpener(), encoder, fs, sink, log, newProgress(log, frames, cfg.FPS))
	inspectStage := inspect.New(mp4muxer.Inspector{}, nil, renderer, fs, log)
	orch := orchestrator.New(encodeStage, inspectStage, sink, log)

	runConfig := orchestrator.DefaultConfig()
	runConfig.OutputPath = cfg.OutputPath
	runConfig.Width = cfg.Width
	runConfig.Height = cfg.Height
	runConfig.FPS = cfg.FPS
	runConfig.Frames = frames
	runConfig.Encoder = string(info.Backend)
	runConfig.PixelFormat = pixel.ParseFormat(cfg.PixelFormat)
	runConfig.Verify = cfg.Verify

	result, err := orch.Run(ctx, src, runConfig)
	if err != nil {
		return err
	}
	log.Info("Output saved to %s (%d frames, %s)", result.Encode.Path, result.Encode.Frames, result.Encode.Duration)

	if cfg.SummaryPath != "" {
		summary := buildSummary(result, info, desc, src.Len())
		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(formatter, fs).Write(cfg.SummaryPath, summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info("Summary saved to %s", cfg.SummaryPath)
	}
	return nil
}

func buildSummary(result orchestrator.RunResult, info smartencoder.Info, desc sourceDesc, available int) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithSource(desc.kind, desc.detail, available).
		WithSettings(summarizer.Settings{
			Encoder:     string(info.Backend),
			Fallback:    info.FallbackUsed,
			Width:       result.Config.Width,
			Height:      result.Config.Height,
			FPS:         result.Config.FPS,
			PixelFormat: result.Config.PixelFormat.String(),
		}).
		WithVideo(summarizer.VideoInfo{
			Path:         result.Encode.Path,
			FrameCount:   result.Encode.Frames,
			Duration:     result.Encode.Duration,
			FileSize:     result.Encode.FileSize,
			EncodedBytes: result.Encode.EncodedBytes,
		})
	if t := result.Track; t != nil {
		b = b.WithTrack(summarizer.TrackInfo{
			Codec:       t.Codec,
			Profile:     t.Profile,
			Level:       t.Level,
			Samples:     t.Samples,
			SyncSamples: t.SyncSamples,
			FrameRate:   t.FrameRate,
		})
	}
	return b.Build()
}

func printInspectResult(r pipeline.InspectResult) {
	fmt.Println(l10n.F("File:        %s", r.Path))
	fmt.Println(l10n.F("Codec:       %s (profile %d, level %d)", r.Codec, r.Profile, r.Level))
	fmt.Println(l10n.F("Size:        %dx%d", r.Width, r.Height))
	fmt.Println(l10n.F("Frames:      %d (%d keyframes)", r.Samples, r.SyncSamples))
	fmt.Println(l10n.F("Frame rate:  %.2f fps (timescale %d)", r.FrameRate, r.Timescale))
	fmt.Println(l10n.F("Duration:    %s", r.Duration))
	if r.Snapshot != "" {
		fmt.Println(l10n.F("Snapshot:    %s", r.Snapshot))
	}
}
