package h264encoder

import (
	"fmt"

	"github.com/user/framemux/pkg/annexb"
	"github.com/user/framemux/pkg/colorconv"
	"github.com/user/framemux/pkg/ports"
)

// PCMEncoder is a pure Go H.264 encoder that stores every macroblock as
// I_PCM. Each call to Encode produces a self-contained access unit of SPS,
// PPS and one IDR slice.
//
// The output is lossless with respect to the YUV420 input and large; it needs
// no external tools. PCMEncoder is not safe for concurrent use.
type PCMEncoder struct {
	width, height int
	geo           geometry

	params   []byte // SPS and PPS NAL units
	rbsp     bitWriter
	idrPicID uint32
}

// NewPCMEncoder creates an encoder for pictures of the given size. Width and
// height must be positive and even, and the picture must fit level 5.1.
func NewPCMEncoder(width, height int) (*PCMEncoder, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d (sizes must be positive and even)", ErrInvalidDimensions, width, height)
	}
	geo := newGeometry(width, height)
	if geo.macroblocks() > maxFrameMacroblocks {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d macroblocks", ErrInvalidDimensions, width, height, maxFrameMacroblocks)
	}

	e := &PCMEncoder{
		width:  width,
		height: height,
		geo:    geo,
	}

	var bw bitWriter
	e.params = appendSPS(e.params, &bw, e.geo)
	e.params = appendPPS(e.params, &bw)

	// 384 sample bytes per macroblock plus a few header bits
	e.rbsp.data = make([]byte, 0, e.geo.macroblocks()*(384+4)+32)
	return e, nil
}

// Width returns the configured picture width.
func (e *PCMEncoder) Width() int { return e.width }

// Height returns the configured picture height.
func (e *PCMEncoder) Height() int { return e.height }

// Encode appends the Annex B access unit for pic to dst and returns the
// extended slice.
func (e *PCMEncoder) Encode(dst []byte, pic *colorconv.Picture) ([]byte, error) {
	if e == nil || e.params == nil {
		return dst, ErrNotInitialized
	}
	if pic == nil || pic.ColorSpace != colorconv.YUV420 {
		return dst, ErrInvalidPicture
	}
	if pic.Width != e.width || pic.Height != e.height {
		return dst, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, pic.Width, pic.Height, e.width, e.height)
	}
	if !pic.Matches(e.width, e.height, colorconv.YUV420) {
		return dst, fmt.Errorf("%w: plane sizes do not match %dx%d", ErrInvalidPicture, e.width, e.height)
	}

	bw := &e.rbsp
	bw.reset()
	writeIDRSliceHeader(bw, e.idrPicID)

	var block [384]byte
	for mbY := 0; mbY < e.geo.mbH; mbY++ {
		for mbX := 0; mbX < e.geo.mbW; mbX++ {
			bw.writeUE(mbTypeIPCM)
			bw.alignZero()
			e.fillMacroblock(block[:], pic, mbX, mbY)
			bw.writeBytes(block[:])
		}
	}
	bw.trailingBits()

	dst = append(dst, e.params...)
	dst = appendNALU(dst, nalIDR, 3, bw.data)

	// consecutive IDR pictures must carry different ids
	e.idrPicID ^= 1
	return dst, nil
}

// fillMacroblock copies the 16x16 luma and two 8x8 chroma blocks of one
// macroblock into block. Samples outside the picture replicate the nearest
// edge sample.
func (e *PCMEncoder) fillMacroblock(block []byte, pic *colorconv.Picture, mbX, mbY int) {
	w, h := e.width, e.height
	cw, ch := colorconv.ChromaSize(w, h)

	i := 0
	for y := 0; y < 16; y++ {
		row := min(mbY*16+y, h-1) * w
		for x := 0; x < 16; x++ {
			block[i] = pic.Planes[0][row+min(mbX*16+x, w-1)]
			i++
		}
	}
	for p := 1; p <= 2; p++ {
		plane := pic.Planes[p]
		for y := 0; y < 8; y++ {
			row := min(mbY*8+y, ch-1) * cw
			for x := 0; x < 8; x++ {
				block[i] = plane[row+min(mbX*8+x, cw-1)]
				i++
			}
		}
	}
}

// ParameterSets returns the SPS and PPS NAL units carried by an access unit
// produced by Encode.
func (e *PCMEncoder) ParameterSets(encoded []byte) (sps, pps [][]byte) {
	return annexb.ParameterSets(encoded)
}

var _ ports.FrameEncoder = (*PCMEncoder)(nil)
