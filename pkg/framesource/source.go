// Package framesource produces the pixel buffers fed to a frame pipeline.
package framesource

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/user/framemux/pkg/pixel"
)

var (
	// ErrFrameOutOfRange is returned for an index outside [0, Len()).
	ErrFrameOutOfRange = errors.New("framesource: frame index out of range")

	// ErrNoImages is returned when an image directory holds no usable files.
	ErrNoImages = errors.New("framesource: no images found")
)

// Source renders numbered frames into caller-owned pixmaps.
type Source interface {
	// Len returns the number of frames.
	Len() int

	// Frame renders frame index into dst, overwriting every pixel.
	Frame(index int, dst *pixel.Pixmap) error
}

func checkIndex(s Source, index int) error {
	if index < 0 || index >= s.Len() {
		return fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, index, s.Len())
	}
	return nil
}

// Solid yields frames of a single color.
type Solid struct {
	Color  color.Color
	Frames int
}

// Len returns the number of frames.
func (s *Solid) Len() int { return s.Frames }

// Frame fills dst with the source color.
func (s *Solid) Frame(index int, dst *pixel.Pixmap) error {
	if err := checkIndex(s, index); err != nil {
		return err
	}
	r, g, b, a := s.Color.RGBA()
	dst.Fill(pixel.Pack(dst.Format(), uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)))
	return nil
}

var _ Source = (*Solid)(nil)
