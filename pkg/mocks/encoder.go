package mocks

import (
	"github.com/user/framemux/pkg/annexb"
	"github.com/user/framemux/pkg/colorconv"
	"github.com/user/framemux/pkg/ports"
)

// FrameEncoder is a mock implementation of ports.FrameEncoder.
//
// By default Encode emits an access unit of fixed SPS, PPS and IDR NAL units
// so that callers see parameter sets on every frame.
type FrameEncoder struct {
	EncodeFunc        func(dst []byte, pic *colorconv.Picture) ([]byte, error)
	ParameterSetsFunc func(encoded []byte) (sps, pps [][]byte)

	// Recorded calls for verification
	EncodeCalls []EncodeCall
}

// EncodeCall records a call to Encode.
type EncodeCall struct {
	Width, Height int
	Luma          []byte // copy of the luma plane
}

var (
	// TestSPS is the SPS emitted by the default Encode.
	TestSPS = []byte{0x67, 0x42, 0xC0, 0x1F, 0xDA, 0x01}
	// TestPPS is the PPS emitted by the default Encode.
	TestPPS = []byte{0x68, 0xCE, 0x3C, 0x80}
	// TestIDR is the slice emitted by the default Encode.
	TestIDR = []byte{0x65, 0x88, 0x84, 0x21, 0xA0}
)

// AccessUnit returns an Annex B access unit of the given NAL units.
func AccessUnit(nalus ...[]byte) []byte {
	var b []byte
	for _, n := range nalus {
		b = append(b, 0, 0, 0, 1)
		b = append(b, n...)
	}
	return b
}

func (m *FrameEncoder) Encode(dst []byte, pic *colorconv.Picture) ([]byte, error) {
	call := EncodeCall{}
	if pic != nil {
		call.Width, call.Height = pic.Width, pic.Height
		if len(pic.Planes) > 0 {
			call.Luma = append([]byte(nil), pic.Planes[0]...)
		}
	}
	m.EncodeCalls = append(m.EncodeCalls, call)

	if m.EncodeFunc != nil {
		return m.EncodeFunc(dst, pic)
	}
	return append(dst, AccessUnit(TestSPS, TestPPS, TestIDR)...), nil
}

func (m *FrameEncoder) ParameterSets(encoded []byte) (sps, pps [][]byte) {
	if m.ParameterSetsFunc != nil {
		return m.ParameterSetsFunc(encoded)
	}
	return annexb.ParameterSets(encoded)
}

var _ ports.FrameEncoder = (*FrameEncoder)(nil)
