// Package colorconv converts packed RGB(A) pixel buffers to planar YUV420 pictures.
package colorconv

import "errors"

var (
	// ErrUnsupportedFormat is returned for pixel formats other than RGBA8888 and RGB888.
	ErrUnsupportedFormat = errors.New("colorconv: unsupported pixel format")

	// ErrSizeMismatch is returned when source and destination dimensions differ.
	ErrSizeMismatch = errors.New("colorconv: size mismatch")

	// ErrColorSpace is returned when a picture has the wrong color space for an operation.
	ErrColorSpace = errors.New("colorconv: wrong color space")
)

// ColorSpace identifies the plane layout of a Picture.
type ColorSpace int

const (
	// RGB is a single interleaved plane of R, G, B bytes.
	RGB ColorSpace = iota
	// YUV420 is three planes: full resolution luma and two half resolution chroma planes.
	YUV420
)

// String returns the string representation of the color space.
func (cs ColorSpace) String() string {
	switch cs {
	case RGB:
		return "rgb"
	case YUV420:
		return "yuv420"
	default:
		return "unknown"
	}
}

// Picture is a planar frame.
//
// Chroma planes of a YUV420 picture are ChromaSize(Width, Height), which rounds
// odd dimensions up so that edge pixels keep their own chroma sample.
type Picture struct {
	Width      int
	Height     int
	ColorSpace ColorSpace
	Planes     [][]byte
}

// NewPicture allocates a picture with planes sized for cs.
func NewPicture(width, height int, cs ColorSpace) *Picture {
	p := &Picture{Width: width, Height: height, ColorSpace: cs}
	switch cs {
	case RGB:
		p.Planes = [][]byte{make([]byte, width*height*3)}
	case YUV420:
		cw, ch := ChromaSize(width, height)
		p.Planes = [][]byte{
			make([]byte, width*height),
			make([]byte, cw*ch),
			make([]byte, cw*ch),
		}
	}
	return p
}

// ChromaSize returns the chroma plane dimensions for a YUV420 picture.
func ChromaSize(width, height int) (int, int) {
	return (width + 1) / 2, (height + 1) / 2
}

// Matches reports whether the picture has the given size and color space and
// its planes are allocated for them.
func (p *Picture) Matches(width, height int, cs ColorSpace) bool {
	if p == nil || p.Width != width || p.Height != height || p.ColorSpace != cs {
		return false
	}

	want := 1
	if cs == YUV420 {
		want = 3
	}
	if len(p.Planes) != want {
		return false
	}
	for i, plane := range p.Planes {
		if len(plane) < p.PlaneWidth(i)*p.PlaneHeight(i) {
			return false
		}
	}
	return true
}

// PlaneWidth returns the sample width of plane i.
func (p *Picture) PlaneWidth(i int) int {
	if p.ColorSpace == YUV420 && i > 0 {
		cw, _ := ChromaSize(p.Width, p.Height)
		return cw
	}
	if p.ColorSpace == RGB {
		return p.Width * 3
	}
	return p.Width
}

// PlaneHeight returns the row count of plane i.
func (p *Picture) PlaneHeight(i int) int {
	if p.ColorSpace == YUV420 && i > 0 {
		_, ch := ChromaSize(p.Width, p.Height)
		return ch
	}
	return p.Height
}
