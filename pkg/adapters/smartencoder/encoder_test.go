package smartencoder

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/framemux/pkg/adapters/h264encoder"
	"github.com/user/framemux/pkg/mocks"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in   string
		want Backend
	}{
		{"", BackendPCM},
		{"pcm", BackendPCM},
		{"ffmpeg", BackendFFmpeg},
		{"auto", BackendAuto},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if err != nil {
			t.Errorf("ParseBackend(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseBackend("vp9"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestNewPCMEncoder(t *testing.T) {
	encoder, info, err := New(BackendPCM, 64, 64, 25, Options{})
	if err != nil {
		t.Fatalf("failed to create PCM encoder: %v", err)
	}
	if _, ok := encoder.(*h264encoder.PCMEncoder); !ok {
		t.Errorf("expected *h264encoder.PCMEncoder, got %T", encoder)
	}
	if info.Backend != BackendPCM || info.FallbackUsed {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestNewFFmpegWithoutFallback(t *testing.T) {
	defer h264encoder.SetFFmpegPath("")

	missing := filepath.Join(t.TempDir(), "ffmpeg")
	_, _, err := New(BackendFFmpeg, 64, 64, 25, Options{FFmpegPath: missing})
	if !errors.Is(err, ErrNoEncoderAvailable) {
		t.Errorf("expected ErrNoEncoderAvailable, got %v", err)
	}
	if !errors.Is(err, h264encoder.ErrFFmpegNotFound) {
		t.Errorf("expected wrapped ErrFFmpegNotFound, got %v", err)
	}
}

func TestNewFFmpegWithFallback(t *testing.T) {
	defer h264encoder.SetFFmpegPath("")

	log := mocks.NewLogger()
	missing := filepath.Join(t.TempDir(), "ffmpeg")
	encoder, info, err := New(BackendFFmpeg, 64, 64, 25, Options{
		FFmpegPath:    missing,
		AllowFallback: true,
		Logger:        log,
	})
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if encoder == nil {
		t.Fatal("encoder is nil")
	}
	if info.Backend != BackendPCM || !info.FallbackUsed || info.RequestedBackend != BackendFFmpeg {
		t.Errorf("unexpected info: %+v", info)
	}
	if len(log.Messages(mocks.LevelWarn)) != 1 {
		t.Errorf("expected one fallback warning, got %d", len(log.Messages(mocks.LevelWarn)))
	}
}

func TestNewAuto(t *testing.T) {
	encoder, info, err := New(BackendAuto, 64, 64, 25, Options{})
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}
	if encoder == nil {
		t.Fatal("encoder is nil")
	}
	if IsFFmpegAvailable() {
		if info.Backend != BackendFFmpeg || info.FallbackUsed {
			t.Errorf("unexpected info: %+v", info)
		}
	} else if info.Backend != BackendPCM || !info.FallbackUsed {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestNewOddSize(t *testing.T) {
	// neither backend can describe an odd size exactly
	for _, backend := range []Backend{BackendPCM, BackendAuto} {
		if _, _, err := New(backend, 63, 64, 25, Options{}); !errors.Is(err, h264encoder.ErrInvalidDimensions) {
			t.Errorf("%s: expected ErrInvalidDimensions, got %v", backend, err)
		}
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, _, err := New(Backend("vp9"), 64, 64, 25, Options{}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestAvailabilityChecks(t *testing.T) {
	t.Logf("FFmpeg available: %v", IsFFmpegAvailable())
}
