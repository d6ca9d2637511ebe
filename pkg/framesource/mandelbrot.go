package framesource

import (
	"fmt"
	"image/color"

	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
)

// MandelbrotOptions configures the zoom animation. Frame i shows the region
// centered on (CenterX, CenterY) with half extent StartSize + Step*i on both
// axes, so the animation zooms out.
type MandelbrotOptions struct {
	Frames        int
	CenterX       float64
	CenterY       float64
	StartSize     float64
	Step          float64
	MaxIterations int

	// Label draws the frame number in the top-left corner when a renderer
	// is available.
	Label bool
}

// DefaultMandelbrotOptions returns the demo animation settings.
func DefaultMandelbrotOptions() MandelbrotOptions {
	return MandelbrotOptions{
		Frames:        1024,
		StartSize:     0.2,
		Step:          0.01,
		MaxIterations: 192,
	}
}

// Mandelbrot renders a grey-scale Mandelbrot set zoom.
type Mandelbrot struct {
	opts     MandelbrotOptions
	renderer ports.Renderer
}

// NewMandelbrot creates the source. renderer may be nil, which disables the label.
func NewMandelbrot(opts MandelbrotOptions, renderer ports.Renderer) *Mandelbrot {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMandelbrotOptions().MaxIterations
	}
	return &Mandelbrot{opts: opts, renderer: renderer}
}

// Len returns the number of frames.
func (m *Mandelbrot) Len() int { return m.opts.Frames }

// Frame renders frame index into dst.
func (m *Mandelbrot) Frame(index int, dst *pixel.Pixmap) error {
	if err := checkIndex(m, index); err != nil {
		return err
	}

	size := m.opts.StartSize + m.opts.Step*float64(index)
	m.render(dst, size)

	if m.opts.Label && m.renderer != nil {
		m.drawLabel(dst, fmt.Sprintf("%d", index))
	}
	return nil
}

func (m *Mandelbrot) render(dst *pixel.Pixmap, size float64) {
	width, height := dst.Width(), dst.Height()
	maxIter := m.opts.MaxIterations

	xStart := m.opts.CenterX - size
	yStart := m.opts.CenterY - size
	xStep := size * 2 / float64(width)
	yStep := size * 2 / float64(height)

	format := dst.Format()
	for y := 0; y < height; y++ {
		py := yStart + float64(y)*yStep
		for x := 0; x < width; x++ {
			px := xStart + float64(x)*xStep

			var zx, zy, zx2, zy2 float64
			n := 0
			for n < maxIter && zx2+zy2 < 4 {
				zy = 2*zx*zy + py
				zx = zx2 - zy2 + px
				zx2 = zx * zx
				zy2 = zy * zy
				n++
			}

			grey := uint8((maxIter - n) * 255 / maxIter)
			dst.SetPixel(x, y, pixel.Pack(format, grey, grey, grey, 255))
		}
	}
}

var (
	labelBackground = color.RGBA{A: 160}
	labelStyle      = ports.TextStyle{Color: color.White, Align: ports.AlignLeft}
)

// drawLabel blends a text badge over the top-left corner of dst.
func (m *Mandelbrot) drawLabel(dst *pixel.Pixmap, text string) {
	const pad, margin = 4, 6

	probe := m.renderer.CreateCanvas(1, 1, color.Transparent)
	tw, th := probe.MeasureText(text, labelStyle)
	w, h := int(tw)+2*pad, int(th)+2*pad

	canvas := m.renderer.CreateCanvas(w, h, color.Transparent)
	canvas.DrawRoundedRect(0, 0, w, h, pad, labelBackground)
	canvas.DrawText(text, pad, h/2, labelStyle)

	blendOver(dst, canvas.ToImage(), margin, margin)
}

var _ Source = (*Mandelbrot)(nil)
