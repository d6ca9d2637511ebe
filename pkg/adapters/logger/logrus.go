package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/user/framemux/pkg/ports"
)

// Format selects the output encoding of a LogrusLogger.
type Format string

const (
	// FormatConsole prints human-readable text lines.
	FormatConsole Format = "console"
	// FormatJSON prints one JSON object per message.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names yield FormatConsole.
func ParseFormat(s string) Format {
	if Format(s) == FormatJSON {
		return FormatJSON
	}
	return FormatConsole
}

// LogrusLogger logs structured entries through logrus. Messages are not
// translated; the component is attached as a field.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus creates a logrus-backed logger writing to w.
func NewLogrus(level ports.LogLevel, format Format, w io.Writer) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrusLevel(level))
	if format == FormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	if level == ports.LevelQuiet {
		l.SetOutput(io.Discard)
	}
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func logrusLevel(level ports.LogLevel) logrus.Level {
	switch level {
	case ports.LevelDebug:
		return logrus.DebugLevel
	case ports.LevelWarn:
		return logrus.WarnLevel
	case ports.LevelError, ports.LevelQuiet:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	if l.entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		l.entry.Debug(fmt.Sprintf(msg, args...))
	}
}

func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	l.entry.Info(fmt.Sprintf(msg, args...))
}

func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	l.entry.Warn(fmt.Sprintf(msg, args...))
}

func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	l.entry.Error(fmt.Sprintf(msg, args...))
}

// WithComponent returns a logger that adds a "component" field.
func (l *LogrusLogger) WithComponent(component string) ports.Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields{
		"component": component,
	})}
}

var _ ports.Logger = (*LogrusLogger)(nil)
