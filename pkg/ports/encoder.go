package ports

import (
	"github.com/user/framemux/pkg/colorconv"
)

// FrameEncoder abstracts an H.264 encoder that compresses one picture at a time.
type FrameEncoder interface {
	// Encode compresses pic, appends the Annex B access unit to dst and
	// returns the extended slice. Passing a reused buffer as dst[:0] avoids
	// allocation once it has grown to the access unit size.
	Encode(dst []byte, pic *colorconv.Picture) ([]byte, error)

	// ParameterSets returns the SPS and PPS NAL units (without start codes)
	// carried in an encoded access unit.
	ParameterSets(encoded []byte) (sps, pps [][]byte)
}
