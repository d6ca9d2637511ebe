package encode

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/user/framemux/pkg/colorconv"
	"github.com/user/framemux/pkg/framepipe"
	"github.com/user/framemux/pkg/framesource"
	"github.com/user/framemux/pkg/mocks"
	"github.com/user/framemux/pkg/pipeline"
	"github.com/user/framemux/pkg/pixel"
)

// funcSource renders frames through a callback.
type funcSource struct {
	n  int
	fn func(index int, dst *pixel.Pixmap) error
}

func (s *funcSource) Len() int { return s.n }

func (s *funcSource) Frame(index int, dst *pixel.Pixmap) error {
	if s.fn != nil {
		return s.fn(index, dst)
	}
	dst.Fill(pixel.PackRGBA(uint8(index), 0, 0, 255))
	return nil
}

type countingObserver struct {
	framepipe.NopObserver
	frames int
}

func (o *countingObserver) OnFrame(framepipe.FrameEvent) { o.frames++ }

func newStage(t *testing.T) (*Stage, *mocks.ContainerOpener, *mocks.FrameEncoder, *mocks.FileSystem) {
	t.Helper()
	opener := &mocks.ContainerOpener{}
	enc := &mocks.FrameEncoder{}
	fs := mocks.NewFileSystem()
	fs.SizeFunc = func(path string) (int64, error) { return 4096, nil }
	return New(opener, enc, fs, nil, mocks.NewLogger(), nil), opener, enc, fs
}

func TestStage_Execute(t *testing.T) {
	stage, opener, enc, fs := newStage(t)

	input := pipeline.EncodeInput{
		Source: &framesource.Solid{Color: color.RGBA{R: 255, A: 255}, Frames: 5},
		Output: "out/movie.mp4",
		Width:  32,
		Height: 16,
		FPS:    25,
	}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(enc.EncodeCalls) != 5 {
		t.Errorf("expected 5 Encode calls, got %d", len(enc.EncodeCalls))
	}
	c := opener.Last()
	if c == nil {
		t.Fatal("expected a container to be opened")
	}
	if c.Path != "out/movie.mp4" {
		t.Errorf("expected path out/movie.mp4, got %s", c.Path)
	}
	if c.FinalizeCalled != 1 || c.CloseCalled != 1 {
		t.Errorf("expected one Finalize and one Close, got %d/%d", c.FinalizeCalled, c.CloseCalled)
	}
	if c.Track.Width != 32 || c.Track.Height != 16 || c.Track.FrameRate != 25 {
		t.Errorf("unexpected track %dx%d@%d", c.Track.Width, c.Track.Height, c.Track.FrameRate)
	}
	if ok, _ := fs.Exists("out"); !ok {
		t.Error("expected output directory to be created")
	}

	if result.Frames != 5 {
		t.Errorf("expected 5 frames, got %d", result.Frames)
	}
	if result.FileSize != 4096 {
		t.Errorf("expected file size 4096, got %d", result.FileSize)
	}
	if result.Duration != 200*time.Millisecond {
		t.Errorf("expected duration 200ms, got %v", result.Duration)
	}
	if result.EncodedBytes == 0 {
		t.Error("expected encoded bytes to be counted")
	}
}

func TestStage_FramesLimit(t *testing.T) {
	stage, _, enc, _ := newStage(t)

	input := pipeline.EncodeInput{
		Source: &funcSource{n: 10},
		Output: "movie.mp4",
		Width:  16,
		Height: 16,
		FPS:    10,
		Frames: 3,
	}
	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Frames != 3 || len(enc.EncodeCalls) != 3 {
		t.Errorf("expected 3 frames, got %d (%d encodes)", result.Frames, len(enc.EncodeCalls))
	}

	// frame i has R = i, which lands in luma
	if enc.EncodeCalls[0].Luma[0] == enc.EncodeCalls[2].Luma[0] {
		t.Error("expected frames to differ")
	}
}

func TestStage_Observer(t *testing.T) {
	opener := &mocks.ContainerOpener{}
	fs := mocks.NewFileSystem()
	fs.SizeFunc = func(string) (int64, error) { return 1, nil }
	obs := &countingObserver{}
	stage := New(opener, &mocks.FrameEncoder{}, fs, nil, mocks.NewLogger(), obs)

	input := pipeline.EncodeInput{Source: &funcSource{n: 4}, Output: "a.mp4", Width: 16, Height: 16, FPS: 25}
	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.frames != 4 {
		t.Errorf("expected 4 frame events, got %d", obs.frames)
	}
}

func TestStage_Cancel(t *testing.T) {
	stage, opener, enc, _ := newStage(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &funcSource{n: 10, fn: func(index int, dst *pixel.Pixmap) error {
		if index == 2 {
			cancel()
		}
		return nil
	}}
	input := pipeline.EncodeInput{Source: src, Output: "movie.mp4", Width: 16, Height: 16, FPS: 25}

	_, err := stage.Execute(ctx, input)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(enc.EncodeCalls) != 3 {
		t.Errorf("expected 3 Encode calls before cancel, got %d", len(enc.EncodeCalls))
	}
	if c := opener.Last(); c.CloseCalled != 1 {
		t.Errorf("expected container to be closed once, got %d", c.CloseCalled)
	}
}

func TestStage_SourceError(t *testing.T) {
	stage, opener, _, _ := newStage(t)

	boom := errors.New("boom")
	src := &funcSource{n: 5, fn: func(index int, dst *pixel.Pixmap) error {
		if index == 1 {
			return boom
		}
		return nil
	}}
	input := pipeline.EncodeInput{Source: src, Output: "movie.mp4", Width: 16, Height: 16, FPS: 25}

	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if c := opener.Last(); c.CloseCalled != 1 {
		t.Errorf("expected container to be closed once, got %d", c.CloseCalled)
	}
}

func TestStage_EncodeError(t *testing.T) {
	stage, opener, enc, _ := newStage(t)
	enc.EncodeFunc = func(dst []byte, _ *colorconv.Picture) ([]byte, error) {
		return dst, errors.New("encoder exploded")
	}

	input := pipeline.EncodeInput{Source: &funcSource{n: 2}, Output: "movie.mp4", Width: 16, Height: 16, FPS: 25}
	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, framepipe.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	if c := opener.Last(); c.CloseCalled != 1 || c.FinalizeCalled != 0 {
		t.Errorf("expected close without finalize, got close=%d finalize=%d", c.CloseCalled, c.FinalizeCalled)
	}
}

func TestStage_InvalidInput(t *testing.T) {
	stage, opener, _, fs := newStage(t)

	if _, err := stage.Execute(context.Background(), pipeline.EncodeInput{Output: "a.mp4", Width: 16, Height: 16, FPS: 25}); err == nil {
		t.Error("expected error for nil source")
	}

	empty := pipeline.EncodeInput{Source: &funcSource{}, Output: "a.mp4", Width: 16, Height: 16, FPS: 25}
	if _, err := stage.Execute(context.Background(), empty); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	bad := pipeline.EncodeInput{Source: &funcSource{n: 1}, Output: "a.mp4", Width: 0, Height: 16, FPS: 25}
	if _, err := stage.Execute(context.Background(), bad); !errors.Is(err, framepipe.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if len(opener.Containers) != 0 {
		t.Errorf("expected no container for invalid input, got %d", len(opener.Containers))
	}

	fs.MkdirAllFunc = func(string) error { return errors.New("read-only") }
	nested := pipeline.EncodeInput{Source: &funcSource{n: 1}, Output: "dir/a.mp4", Width: 16, Height: 16, FPS: 25}
	if _, err := stage.Execute(context.Background(), nested); err == nil {
		t.Error("expected error when output directory cannot be created")
	}
}

func TestStage_DebugSink(t *testing.T) {
	opener := &mocks.ContainerOpener{}
	fs := mocks.NewFileSystem()
	fs.SizeFunc = func(string) (int64, error) { return 1, nil }
	sink := &mocks.DebugSink{EnabledValue: true, SaveErr: errors.New("disk full")}
	log := mocks.NewLogger()
	stage := New(opener, &mocks.FrameEncoder{}, fs, sink, log, nil)

	input := pipeline.EncodeInput{Source: &funcSource{n: 3}, Output: "a.mp4", Width: 16, Height: 16, FPS: 25}
	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("debug output failures must not abort encoding: %v", err)
	}
	if len(sink.SourceFrames) != 3 {
		t.Errorf("expected 3 saved frames, got %v", sink.SourceFrames)
	}
	if warns := log.Messages(mocks.LevelWarn); len(warns) != 3 {
		t.Errorf("expected 3 warnings, got %v", warns)
	}

	disabled := &mocks.DebugSink{}
	stage = New(opener, &mocks.FrameEncoder{}, fs, disabled, mocks.NewLogger(), nil)
	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(disabled.SourceFrames) != 0 {
		t.Errorf("disabled sink should not receive frames, got %v", disabled.SourceFrames)
	}
}
