package mocks

import (
	"fmt"
	"io"

	"github.com/user/framemux/pkg/ports"
)

// MovieInspector is a mock implementation of ports.MovieInspector.
type MovieInspector struct {
	Info        *ports.TrackInfo
	InspectFunc func(path string) (*ports.TrackInfo, error)

	InspectedPaths []string
}

func (m *MovieInspector) Inspect(path string) (*ports.TrackInfo, error) {
	m.InspectedPaths = append(m.InspectedPaths, path)
	if m.InspectFunc != nil {
		return m.InspectFunc(path)
	}
	if m.Info == nil {
		return nil, fmt.Errorf("no such movie: %s", path)
	}
	info := *m.Info
	return &info, nil
}

// VideoDecoder is a mock implementation of ports.VideoDecoder.
type VideoDecoder struct {
	Frames         []ports.VideoFrame
	ReadFramesFunc func(path string) ([]ports.VideoFrame, error)

	ReadPaths   []string
	CloseCalled bool
}

func (m *VideoDecoder) ReadFrames(path string) ([]ports.VideoFrame, error) {
	m.ReadPaths = append(m.ReadPaths, path)
	if m.ReadFramesFunc != nil {
		return m.ReadFramesFunc(path)
	}
	return m.Frames, nil
}

func (m *VideoDecoder) ReadFramesFromReader(reader io.ReadSeeker) ([]ports.VideoFrame, error) {
	return m.Frames, nil
}

func (m *VideoDecoder) Close() {
	m.CloseCalled = true
}

var (
	_ ports.MovieInspector = (*MovieInspector)(nil)
	_ ports.VideoDecoder   = (*VideoDecoder)(nil)
)
