package framepipe

import "time"

// Info describes an initialized pipeline.
type Info struct {
	Path          string
	Width         int
	Height        int
	FrameRate     int
	FrameDuration time.Duration
}

// FrameEvent describes one submitted frame.
type FrameEvent struct {
	Index         int64 // presentation and decode index of the packet
	Bytes         int   // size of the encoded access unit
	Keyframe      bool
	ParameterSets int // SPS plus PPS units carried by the frame
}

// Stats summarizes the frames written by a pipeline.
type Stats struct {
	Frames       int64
	EncodedBytes int64
	Duration     time.Duration // presentation duration of the written frames
}

// Observer receives lifecycle events from a Pipeline. Calls are made
// synchronously from the goroutine driving the pipeline.
type Observer interface {
	OnInitialize(info Info)
	OnFrame(ev FrameEvent)
	// OnClose is called once, with the error Close returns.
	OnClose(stats Stats, err error)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) OnInitialize(Info)    {}
func (NopObserver) OnFrame(FrameEvent)   {}
func (NopObserver) OnClose(Stats, error) {}

var _ Observer = NopObserver{}
