package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/framemux/pkg/adapters/nullsink"
	"github.com/user/framemux/pkg/mocks"
	"github.com/user/framemux/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func pngRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatPNG {
				return nil, errors.New("unexpected format")
			}
			return []byte{0x89, 0x50, 0x4E, 0x47}, nil // PNG header
		},
	}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, 1, mocks.NewFileSystem(), &mocks.Renderer{})
	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
	if nullsink.New().Enabled() {
		t.Error("expected null sink to be disabled")
	}
}

func TestSink_SaveSourceFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, 1, fs, pngRenderer())

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	if err := sink.SaveSourceFrame(5, img); err != nil {
		t.Fatalf("SaveSourceFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "frame-0005.png")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if len(saved) != 4 {
		t.Errorf("expected PNG data, got %d bytes", len(saved))
	}
}

func TestSink_SaveSourceFrameStride(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, 4, fs, pngRenderer())

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 10; i++ {
		if err := sink.SaveSourceFrame(i, img); err != nil {
			t.Fatalf("SaveSourceFrame %d failed: %v", i, err)
		}
	}

	files := fs.GetAllFiles()
	if len(files) != 3 {
		t.Errorf("expected frames 0, 4 and 8, got %d files", len(files))
	}
	for _, i := range []string{"frame-0000.png", "frame-0004.png", "frame-0008.png"} {
		if _, ok := fs.GetFile(filepath.Join(testBaseDir, "frames", i)); !ok {
			t.Errorf("expected %s to be saved", i)
		}
	}
}

func TestSink_SaveSourceFrameEncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(image.Image, ports.ImageFormat, int) ([]byte, error) {
			return nil, errors.New("encoder broken")
		},
	}
	sink := New(testBaseDir, 1, mocks.NewFileSystem(), renderer)
	if err := sink.SaveSourceFrame(0, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error from renderer")
	}
}

func TestSink_SaveJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, 1, fs, &mocks.Renderer{})

	if err := sink.SaveTrackJSON([]byte(`{"codec": "avc1"}`)); err != nil {
		t.Fatalf("SaveTrackJSON failed: %v", err)
	}
	if err := sink.SaveRunJSON([]byte(`{"frames": 10}`)); err != nil {
		t.Fatalf("SaveRunJSON failed: %v", err)
	}

	tests := map[string]string{
		"track.json": `{"codec": "avc1"}`,
		"run.json":   `{"frames": 10}`,
	}
	for name, want := range tests {
		saved, ok := fs.GetFile(filepath.Join(testBaseDir, name))
		if !ok {
			t.Errorf("expected %s to be saved", name)
			continue
		}
		if string(saved) != want {
			t.Errorf("%s: expected %q, got %q", name, want, saved)
		}
	}
}
