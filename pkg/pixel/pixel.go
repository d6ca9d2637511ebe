// Package pixel provides packed pixel buffers used as frame sources.
package pixel

import (
	"image"
	"image/color"
	"strings"
)

// Format identifies the packing of a pixel word.
type Format int

const (
	FormatUnknown Format = iota
	// FormatRGBA8888 packs red in bits 31-24, green 23-16, blue 15-8 and alpha 7-0.
	FormatRGBA8888
	// FormatRGB888 packs red in bits 23-16, green 15-8 and blue 7-0.
	FormatRGB888
	// FormatAlpha holds an 8-bit alpha value only.
	FormatAlpha
	// FormatRGB565 packs 5-6-5 bit color.
	FormatRGB565
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "rgba8888"
	case FormatRGB888:
		return "rgb888"
	case FormatAlpha:
		return "alpha"
	case FormatRGB565:
		return "rgb565"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name. Unknown names yield FormatUnknown.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "rgba8888", "rgba":
		return FormatRGBA8888
	case "rgb888", "rgb":
		return FormatRGB888
	case "alpha":
		return FormatAlpha
	case "rgb565":
		return FormatRGB565
	default:
		return FormatUnknown
	}
}

// Buffer is a readable rectangular pixel buffer of a fixed size and format.
type Buffer interface {
	Width() int
	Height() int
	Format() Format

	// Pixel returns the packed pixel word at (x, y).
	Pixel(x, y int) uint32
}

// Pixmap is an in-memory Buffer storing one packed word per pixel.
type Pixmap struct {
	width  int
	height int
	format Format
	pix    []uint32
}

// NewPixmap allocates a zeroed pixmap.
func NewPixmap(width, height int, format Format) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		format: format,
		pix:    make([]uint32, width*height),
	}
}

func (p *Pixmap) Width() int     { return p.width }
func (p *Pixmap) Height() int    { return p.height }
func (p *Pixmap) Format() Format { return p.format }

// Pixel returns the packed word at (x, y), or 0 outside the bounds.
func (p *Pixmap) Pixel(x, y int) uint32 {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return 0
	}
	return p.pix[y*p.width+x]
}

// SetPixel stores a packed word at (x, y). Writes outside the bounds are ignored.
func (p *Pixmap) SetPixel(x, y int, v uint32) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	p.pix[y*p.width+x] = v
}

// Fill sets every pixel to v.
func (p *Pixmap) Fill(v uint32) {
	for i := range p.pix {
		p.pix[i] = v
	}
}

// SetColor stores c at (x, y) packed for the pixmap's format.
func (p *Pixmap) SetColor(x, y int, c color.Color) {
	r, g, b, a := c.RGBA()
	p.SetPixel(x, y, Pack(p.format, uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)))
}

// CopyFrom packs img into the pixmap. img is read starting at its Bounds().Min;
// pixels outside img are left untouched.
func (p *Pixmap) CopyFrom(img image.Image) {
	b := img.Bounds()
	for y := 0; y < p.height && y < b.Dy(); y++ {
		for x := 0; x < p.width && x < b.Dx(); x++ {
			p.SetColor(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
}

// FromImage creates a pixmap of img's size in the given format.
func FromImage(img image.Image, format Format) *Pixmap {
	b := img.Bounds()
	p := NewPixmap(b.Dx(), b.Dy(), format)
	p.CopyFrom(img)
	return p
}

// ToImage unpacks the pixmap into a new image.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for i, v := range p.pix {
		r, g, b, a := Unpack(p.format, v)
		copy(img.Pix[i*4:], []uint8{r, g, b, a})
	}
	return img
}

// Pack packs 8-bit channels into a word of the given format.
func Pack(format Format, r, g, b, a uint8) uint32 {
	switch format {
	case FormatRGBA8888:
		return PackRGBA(r, g, b, a)
	case FormatRGB888:
		return PackRGB(r, g, b)
	case FormatAlpha:
		return uint32(a)
	case FormatRGB565:
		return uint32(r>>3)<<11 | uint32(g>>2)<<5 | uint32(b>>3)
	default:
		return 0
	}
}

// Unpack splits a word of the given format into 8-bit channels. Formats
// without alpha report 255; FormatAlpha reports black.
func Unpack(format Format, v uint32) (r, g, b, a uint8) {
	switch format {
	case FormatRGBA8888:
		return uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)
	case FormatRGB888:
		return uint8(v >> 16), uint8(v >> 8), uint8(v), 255
	case FormatAlpha:
		return 0, 0, 0, uint8(v)
	case FormatRGB565:
		r5, g6, b5 := (v>>11)&0x1f, (v>>5)&0x3f, v&0x1f
		return uint8(r5<<3 | r5>>2), uint8(g6<<2 | g6>>4), uint8(b5<<3 | b5>>2), 255
	default:
		return 0, 0, 0, 0
	}
}

// PackRGBA packs channels as RGBA8888.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// PackRGB packs channels as RGB888.
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

var _ Buffer = (*Pixmap)(nil)
