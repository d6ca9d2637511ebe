package summarizer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/framemux/pkg/mocks"
)

func testSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			Kind:   "images",
			Detail: "shots",
			Frames: 120,
		},
		Settings: Settings{
			Encoder:     "pcm",
			Width:       320,
			Height:      240,
			FPS:         30,
			PixelFormat: "rgba8888",
		},
		Video: VideoInfo{
			Path:         "out/movie.mp4",
			FrameCount:   100,
			Duration:     3333 * time.Millisecond,
			FileSize:     1024 * 1024,
			EncodedBytes: 1000,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	checks := []string{
		"# Encode Summary",
		"| Kind | images |",
		"| Location | shots |",
		"| Available Frames | 120 |",
		"| Encoder | pcm |",
		"| Video Size | 320x240 |",
		"| Frame Rate | 30 fps |",
		"| Pixel Format | rgba8888 |",
		"| File | out/movie.mp4 |",
		"| Frames | 100 |",
		"| Duration | 3.333 s |",
		"| File Size | 1.00 MB |",
		"| Encoded Data | 1000 B |",
		"2024-01-15T10:30:00Z",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}

	// Track section only when the file was inspected
	if strings.Contains(result, "## Track") {
		t.Error("output should NOT contain a track section")
	}
}

func TestMarkdownFormatter_Format_WithTrack(t *testing.T) {
	summary := testSummary()
	summary.Settings.Fallback = true
	summary.Track = &TrackInfo{
		Codec:       "avc1",
		Profile:     66,
		Level:       31,
		Samples:     100,
		SyncSamples: 100,
		FrameRate:   30,
	}

	result := NewMarkdownFormatter().Format(summary)

	checks := []string{
		"## Track",
		"| Codec | avc1 (profile 66, level 31) |",
		"| Samples | 100 |",
		"| Keyframes | 100 |",
		"| Measured Frame Rate | 30.00 fps |",
		"| Encoder | pcm (fallback) |",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Encode Summary":  "エンコードサマリー",
			"Video Size":      "動画サイズ",
			"Generated at %s": "%s に生成",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(testSummary())

	for _, want := range []string{"エンコードサマリー", "動画サイズ", "2024-01-15T10:30:00Z に生成"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(testSummary())

	if !strings.Contains(result, "framemux v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	formatter := FormatFunc(func(s *Summary) string { return "summary of " + s.Video.Path })

	path := filepath.Join("reports", "run.md")
	if err := NewWriter(formatter, fs).Write(path, testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if ok, _ := fs.Exists("reports"); !ok {
		t.Error("expected parent directory to be created")
	}
	data, ok := fs.GetFile(path)
	if !ok {
		t.Fatalf("expected %s to be written", path)
	}
	if string(data) != "summary of out/movie.mp4" {
		t.Errorf("unexpected content %q", data)
	}
}
