package mocks

import (
	"image"

	"github.com/user/framemux/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	EnabledValue bool
	SaveErr      error

	// Recorded calls for verification
	SourceFrames []int
	TrackJSON    []byte
	RunJSON      []byte
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveSourceFrame(index int, img image.Image) error {
	m.SourceFrames = append(m.SourceFrames, index)
	return m.SaveErr
}

func (m *DebugSink) SaveTrackJSON(data []byte) error {
	m.TrackJSON = data
	return m.SaveErr
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.RunJSON = data
	return m.SaveErr
}

var _ ports.DebugSink = (*DebugSink)(nil)
