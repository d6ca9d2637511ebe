package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/framemux/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	DecodeCalls int
	ResizeCalls int
	Canvases    []*Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{width: width, height: height, bg: bg}
	m.Canvases = append(m.Canvases, c)
	return c
}

// DecodeImage returns a 100x100 image filled with the first byte of data as
// grey, unless DecodeImageFunc is set.
func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	m.DecodeCalls++
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	if len(data) > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: data[0]}), image.Point{}, draw.Src)
	}
	return img, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

// ResizeImage returns a blank image of the requested size unless
// ResizeImageFunc is set.
func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeCalls++
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas. Text measures 6 pixels
// per rune and 10 pixels high.
type Canvas struct {
	width  int
	height int
	bg     color.Color
	img    *image.RGBA

	Texts []string
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawRoundedRect(x, y, w, h, radius int, c color.Color) {}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(6 * len([]rune(text))), 10
}

func (m *Canvas) ToImage() image.Image {
	if m.img == nil {
		m.img = image.NewRGBA(image.Rect(0, 0, m.width, m.height))
		if m.bg != nil {
			draw.Draw(m.img, m.img.Bounds(), image.NewUniform(m.bg), image.Point{}, draw.Src)
		}
	}
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
