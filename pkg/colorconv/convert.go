package colorconv

import (
	"fmt"

	"github.com/user/framemux/pkg/pixel"
)

// Unpack writes src into the interleaved RGB plane of dst.
//
// Rows are walked outer, columns inner, and each pixel is read at
// (column, row) from src. dst must be an RGB picture of src's size.
func Unpack(src pixel.Buffer, dst *Picture) error {
	width, height := src.Width(), src.Height()
	if dst == nil {
		return fmt.Errorf("%w: no destination picture", ErrSizeMismatch)
	}
	if !dst.Matches(width, height, RGB) {
		return fmt.Errorf("%w: source %dx%d, destination %s %dx%d",
			ErrSizeMismatch, width, height, dst.ColorSpace, dst.Width, dst.Height)
	}

	var rShift, gShift, bShift uint
	switch src.Format() {
	case pixel.FormatRGBA8888:
		rShift, gShift, bShift = 24, 16, 8
	case pixel.FormatRGB888:
		rShift, gShift, bShift = 16, 8, 0
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, src.Format())
	}

	rgb := dst.Planes[0]
	off := 0
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			v := src.Pixel(j, i)
			rgb[off] = byte(v >> rShift)
			rgb[off+1] = byte(v >> gShift)
			rgb[off+2] = byte(v >> bShift)
			off += 3
		}
	}
	return nil
}

// ToYUV420 transforms an RGB picture into a YUV420 picture of the same size
// using BT.601 studio-swing integer coefficients.
//
// Each chroma sample is the rounded average of the chroma of the pixels in its
// 2x2 block; blocks on the right and bottom edge of odd-sized pictures average
// the pixels that exist.
func ToYUV420(src, dst *Picture) error {
	if src == nil || src.ColorSpace != RGB {
		return fmt.Errorf("%w: source must be rgb", ErrColorSpace)
	}
	if dst == nil {
		return fmt.Errorf("%w: no destination picture", ErrSizeMismatch)
	}
	if !dst.Matches(src.Width, src.Height, YUV420) {
		return fmt.Errorf("%w: source %dx%d, destination %dx%d",
			ErrSizeMismatch, src.Width, src.Height, dst.Width, dst.Height)
	}

	width, height := src.Width, src.Height
	rgb := src.Planes[0]
	yPlane, uPlane, vPlane := dst.Planes[0], dst.Planes[1], dst.Planes[2]
	cw, _ := ChromaSize(width, height)

	for by := 0; by < height; by += 2 {
		for bx := 0; bx < width; bx += 2 {
			var uSum, vSum, n int
			for y := by; y < by+2 && y < height; y++ {
				for x := bx; x < bx+2 && x < width; x++ {
					idx := (y*width + x) * 3
					r, g, b := int(rgb[idx]), int(rgb[idx+1]), int(rgb[idx+2])

					yPlane[y*width+x] = luma(r, g, b)
					uSum += ((-38*r - 74*g + 112*b + 128) >> 8) + 128
					vSum += ((112*r - 94*g - 18*b + 128) >> 8) + 128
					n++
				}
			}
			ci := (by/2)*cw + bx/2
			uPlane[ci] = clip((uSum + n/2) / n)
			vPlane[ci] = clip((vSum + n/2) / n)
		}
	}
	return nil
}

// Convert unpacks src into rgb and transforms it into yuv. Both pictures are
// overwritten in place.
func Convert(src pixel.Buffer, rgb, yuv *Picture) error {
	if err := Unpack(src, rgb); err != nil {
		return err
	}
	return ToYUV420(rgb, yuv)
}

func luma(r, g, b int) byte {
	return clip(((66*r + 129*g + 25*b + 128) >> 8) + 16)
}

func clip(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
