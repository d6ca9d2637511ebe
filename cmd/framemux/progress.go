package main

import (
	"github.com/user/framemux/pkg/framepipe"
	"github.com/user/framemux/pkg/ports"
)

// progress logs encoding progress about once per second of video.
type progress struct {
	framepipe.NopObserver

	log   ports.Logger
	total int
	every int64
}

func newProgress(log ports.Logger, total, fps int) *progress {
	return &progress{log: log, total: total, every: int64(max(fps, 1))}
}

func (p *progress) OnFrame(ev framepipe.FrameEvent) {
	n := ev.Index + 1
	if n%p.every == 0 || n == int64(p.total) {
		p.log.Info("Encoded %d/%d frames", n, p.total)
	}
}

func (p *progress) OnClose(stats framepipe.Stats, err error) {
	if err != nil {
		p.log.Error("Encoding failed after %d frames: %v", stats.Frames, err)
	}
}
