package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion sets the framemux version shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Encode Summary"))

	sb.WriteString(f.heading(t("Source")))
	f.row(&sb, t("Kind"), s.Source.Kind)
	if s.Source.Detail != "" {
		f.row(&sb, t("Location"), s.Source.Detail)
	}
	f.row(&sb, t("Available Frames"), fmt.Sprintf("%d", s.Source.Frames))
	sb.WriteString("\n")

	sb.WriteString(f.heading(t("Settings")))
	encoder := s.Settings.Encoder
	if s.Settings.Fallback {
		encoder += " (" + t("fallback") + ")"
	}
	f.row(&sb, t("Encoder"), encoder)
	f.row(&sb, t("Video Size"), fmt.Sprintf("%dx%d", s.Settings.Width, s.Settings.Height))
	f.row(&sb, t("Frame Rate"), fmt.Sprintf("%d fps", s.Settings.FPS))
	if s.Settings.PixelFormat != "" {
		f.row(&sb, t("Pixel Format"), s.Settings.PixelFormat)
	}
	sb.WriteString("\n")

	sb.WriteString(f.heading(t("Video")))
	if s.Video.Path != "" {
		f.row(&sb, t("File"), s.Video.Path)
	}
	f.row(&sb, t("Frames"), fmt.Sprintf("%d", s.Video.FrameCount))
	f.row(&sb, t("Duration"), formatDuration(s.Video.Duration))
	f.row(&sb, t("File Size"), formatBytes(s.Video.FileSize))
	f.row(&sb, t("Encoded Data"), formatBytes(s.Video.EncodedBytes))
	sb.WriteString("\n")

	if s.Track != nil {
		sb.WriteString(f.heading(t("Track")))
		f.row(&sb, t("Codec"), fmt.Sprintf("%s (%s %d, %s %d)", s.Track.Codec, t("profile"), s.Track.Profile, t("level"), s.Track.Level))
		f.row(&sb, t("Samples"), fmt.Sprintf("%d", s.Track.Samples))
		f.row(&sb, t("Keyframes"), fmt.Sprintf("%d", s.Track.SyncSamples))
		f.row(&sb, t("Measured Frame Rate"), fmt.Sprintf("%.2f fps", s.Track.FrameRate))
		sb.WriteString("\n")
	}

	footer := fmt.Sprintf(t("Generated at %s"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" (framemux %s)", f.version)
	}
	sb.WriteString("---\n\n")
	sb.WriteString(footer + "\n")

	return sb.String()
}

func (f *MarkdownFormatter) heading(title string) string {
	return fmt.Sprintf("## %s\n\n| %s | %s |\n|---|---|\n", title, f.translate("Item"), f.translate("Value"))
}

func (f *MarkdownFormatter) row(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "| %s | %s |\n", label, value)
}

// formatBytes formats a byte count with binary units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 2; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMG"[exp])
}

// formatDuration formats d in seconds with millisecond precision.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f s", d.Seconds())
}

var _ Formatter = (*MarkdownFormatter)(nil)
