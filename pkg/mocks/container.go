package mocks

import (
	"sync"

	"github.com/user/framemux/pkg/ports"
)

// ContainerOpener is a mock implementation of ports.ContainerOpener.
// Each successful Open creates a new Container that is kept for inspection.
type ContainerOpener struct {
	mu sync.Mutex

	OpenFunc func(path string) (ports.Container, error)

	// Hooks copied into every created container
	AddVideoTrackErr error
	FinalizeErr      error
	CloseErr         error
	AppendFunc       func(pkt ports.Packet) error
	SampleEntryErr   error

	OpenedPaths []string
	Containers  []*Container
}

func (m *ContainerOpener) Open(path string) (ports.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}

	c := &Container{
		Path:             path,
		AddVideoTrackErr: m.AddVideoTrackErr,
		FinalizeErr:      m.FinalizeErr,
		CloseErr:         m.CloseErr,
		appendFunc:       m.AppendFunc,
		sampleEntryErr:   m.SampleEntryErr,
	}
	m.Containers = append(m.Containers, c)
	return c, nil
}

// Last returns the most recently opened container, or nil.
func (m *ContainerOpener) Last() *Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Containers) == 0 {
		return nil
	}
	return m.Containers[len(m.Containers)-1]
}

// Container is a mock implementation of ports.Container.
type Container struct {
	Path string

	AddVideoTrackErr error
	FinalizeErr      error
	CloseErr         error

	appendFunc     func(pkt ports.Packet) error
	sampleEntryErr error

	Track          *Track
	FinalizeCalled int
	CloseCalled    int
}

func (c *Container) AddVideoTrack(width, height, frameRate int) (ports.Track, error) {
	if c.AddVideoTrackErr != nil {
		return nil, c.AddVideoTrackErr
	}
	c.Track = &Track{
		Width:          width,
		Height:         height,
		FrameRate:      frameRate,
		AppendFunc:     c.appendFunc,
		SampleEntryErr: c.sampleEntryErr,
	}
	return c.Track, nil
}

func (c *Container) Finalize() error {
	c.FinalizeCalled++
	return c.FinalizeErr
}

func (c *Container) Close() error {
	c.CloseCalled++
	return c.CloseErr
}

// Track is a mock implementation of ports.Track.
type Track struct {
	Width, Height, FrameRate int

	AppendFunc     func(pkt ports.Packet) error
	SampleEntryErr error

	Packets []ports.Packet
	SPS     [][]byte
	PPS     [][]byte
}

// Append records a copy of pkt unless AppendFunc rejects it.
func (t *Track) Append(pkt ports.Packet) error {
	if t.AppendFunc != nil {
		if err := t.AppendFunc(pkt); err != nil {
			return err
		}
	}
	pkt.Data = append([]byte(nil), pkt.Data...)
	t.Packets = append(t.Packets, pkt)
	return nil
}

func (t *Track) SetSampleEntry(sps, pps [][]byte) error {
	if t.SampleEntryErr != nil {
		return t.SampleEntryErr
	}
	t.SPS, t.PPS = sps, pps
	return nil
}

var (
	_ ports.ContainerOpener = (*ContainerOpener)(nil)
	_ ports.Container       = (*Container)(nil)
	_ ports.Track           = (*Track)(nil)
)
