package framesource

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/framemux/pkg/adapters/ggrenderer"
	"github.com/user/framemux/pkg/mocks"
	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
)

func TestSolid(t *testing.T) {
	s := &Solid{Color: color.RGBA{R: 10, G: 20, B: 30, A: 255}, Frames: 2}

	for _, f := range []pixel.Format{pixel.FormatRGBA8888, pixel.FormatRGB888} {
		dst := pixel.NewPixmap(4, 3, f)
		if err := s.Frame(1, dst); err != nil {
			t.Fatalf("%s: Frame failed: %v", f, err)
		}
		r, g, b, _ := pixel.Unpack(f, dst.Pixel(3, 2))
		if r != 10 || g != 20 || b != 30 {
			t.Errorf("%s: got (%d,%d,%d)", f, r, g, b)
		}
	}

	if err := s.Frame(2, pixel.NewPixmap(1, 1, pixel.FormatRGB888)); !errors.Is(err, ErrFrameOutOfRange) {
		t.Errorf("expected ErrFrameOutOfRange, got %v", err)
	}
	if err := s.Frame(-1, pixel.NewPixmap(1, 1, pixel.FormatRGB888)); !errors.Is(err, ErrFrameOutOfRange) {
		t.Errorf("expected ErrFrameOutOfRange for negative index, got %v", err)
	}
}

func wideMandelbrot(label bool) *Mandelbrot {
	// a half extent of 2 puts the corners well outside the set
	return NewMandelbrot(MandelbrotOptions{
		Frames:        2,
		StartSize:     2,
		MaxIterations: 50,
		Label:         label,
	}, ggrenderer.New())
}

func TestMandelbrot_Render(t *testing.T) {
	m := wideMandelbrot(false)
	dst := pixel.NewPixmap(32, 32, pixel.FormatRGBA8888)

	if err := m.Frame(0, dst); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	// c = (-2, -2) escapes after one iteration
	r, g, b, a := pixel.Unpack(pixel.FormatRGBA8888, dst.Pixel(0, 0))
	if r != 249 || g != r || b != r || a != 255 {
		t.Errorf("corner (%d,%d,%d,%d), want grey 249 opaque", r, g, b, a)
	}
	// c = (0, 0) never escapes
	if r, _, _, a := pixel.Unpack(pixel.FormatRGBA8888, dst.Pixel(16, 16)); r != 0 || a != 255 {
		t.Errorf("center (%d, alpha %d), want black", r, a)
	}

	again := pixel.NewPixmap(32, 32, pixel.FormatRGBA8888)
	if err := m.Frame(0, again); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if dst.Pixel(x, y) != again.Pixel(x, y) {
				t.Fatalf("pixel (%d,%d) differs between renders", x, y)
			}
		}
	}
}

func TestMandelbrot_Defaults(t *testing.T) {
	opts := DefaultMandelbrotOptions()
	if opts.Frames != 1024 || opts.StartSize != 0.2 || opts.Step != 0.01 || opts.MaxIterations != 192 {
		t.Errorf("unexpected defaults %+v", opts)
	}

	m := NewMandelbrot(MandelbrotOptions{Frames: 1}, nil)
	if m.opts.MaxIterations != 192 {
		t.Errorf("zero iterations should default to 192, got %d", m.opts.MaxIterations)
	}
	if err := m.Frame(1, pixel.NewPixmap(2, 2, pixel.FormatRGB888)); !errors.Is(err, ErrFrameOutOfRange) {
		t.Errorf("expected ErrFrameOutOfRange, got %v", err)
	}
}

func TestMandelbrot_Label(t *testing.T) {
	plain := pixel.NewPixmap(64, 64, pixel.FormatRGB888)
	if err := wideMandelbrot(false).Frame(1, plain); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	labeled := pixel.NewPixmap(64, 64, pixel.FormatRGB888)
	if err := wideMandelbrot(true).Frame(1, labeled); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	changed := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if plain.Pixel(x, y) != labeled.Pixel(x, y) {
				changed++
				if x > 40 || y > 40 {
					t.Fatalf("label touched pixel (%d,%d) outside the corner", x, y)
				}
			}
		}
	}
	if changed == 0 {
		t.Error("expected the label to change pixels")
	}
}

func TestMandelbrot_LabelText(t *testing.T) {
	r := &mocks.Renderer{}
	m := NewMandelbrot(MandelbrotOptions{Frames: 20, StartSize: 1, Label: true}, r)

	if err := m.Frame(12, pixel.NewPixmap(32, 32, pixel.FormatRGBA8888)); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	var texts []string
	for _, c := range r.Canvases {
		texts = append(texts, c.Texts...)
	}
	if len(texts) != 1 || texts[0] != "12" {
		t.Errorf("drawn texts %v, want [12]", texts)
	}
}

func TestBlendOver(t *testing.T) {
	dst := pixel.NewPixmap(4, 4, pixel.FormatRGBA8888)
	dst.Fill(pixel.PackRGBA(0, 0, 200, 255))

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{R: 128, A: 128}) // half-transparent red, premultiplied

	blendOver(dst, src, 3, 0)

	if r, _, b, _ := pixel.Unpack(pixel.FormatRGBA8888, dst.Pixel(3, 0)); r != 255 || b != 0 {
		t.Errorf("opaque pixel (%d, _, %d), want red", r, b)
	}
	// the second source column falls outside dst
	if r, _, b, _ := pixel.Unpack(pixel.FormatRGBA8888, dst.Pixel(2, 0)); r != 0 || b != 200 {
		t.Errorf("untouched pixel changed to (%d, _, %d)", r, b)
	}

	blendOver(dst, src, 0, 2)
	r, _, b, a := pixel.Unpack(pixel.FormatRGBA8888, dst.Pixel(1, 2))
	if r < 126 || r > 130 || b < 98 || b > 102 || a != 255 {
		t.Errorf("blended pixel (%d, _, %d, %d), want about (128, _, 100, 255)", r, b, a)
	}
	// transparent source pixels leave dst alone
	if r, _, b, _ := pixel.Unpack(pixel.FormatRGBA8888, dst.Pixel(0, 3)); r != 0 || b != 200 {
		t.Errorf("transparent source changed pixel to (%d, _, %d)", r, b)
	}
}

func TestImageSequence(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("frames/b.png", []byte{50})
	fs.WriteFile("frames/a.jpg", []byte{200})
	fs.WriteFile("frames/notes.txt", []byte{1})
	fs.WriteFile("other/c.png", []byte{1})
	r := &mocks.Renderer{}

	seq, err := NewImageSequence(fs, r, "frames")
	if err != nil {
		t.Fatalf("NewImageSequence failed: %v", err)
	}
	if seq.Len() != 2 {
		t.Fatalf("Len = %d, want 2", seq.Len())
	}
	if p := seq.Paths(); p[0] != "frames/a.jpg" || p[1] != "frames/b.png" {
		t.Errorf("paths %v", p)
	}

	w, h, err := seq.Size()
	if err != nil || w != 100 || h != 100 {
		t.Errorf("Size = %dx%d, %v", w, h, err)
	}

	dst := pixel.NewPixmap(100, 100, pixel.FormatRGB888)
	if err := seq.Frame(0, dst); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if got, _, _, _ := pixel.Unpack(pixel.FormatRGB888, dst.Pixel(50, 50)); got != 200 {
		t.Errorf("frame 0 grey %d, want 200", got)
	}
	if r.ResizeCalls != 0 {
		t.Errorf("matching size must not be resized")
	}

	if err := seq.Frame(1, pixel.NewPixmap(40, 30, pixel.FormatRGB888)); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if r.ResizeCalls != 1 {
		t.Errorf("resize calls %d, want 1", r.ResizeCalls)
	}

	if err := seq.Frame(2, dst); !errors.Is(err, ErrFrameOutOfRange) {
		t.Errorf("expected ErrFrameOutOfRange, got %v", err)
	}
}

func TestImageSequence_Errors(t *testing.T) {
	fs := mocks.NewFileSystem()
	if _, err := NewImageSequence(fs, &mocks.Renderer{}, "empty"); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}

	fs.WriteFile("frames/a.png", []byte{1})
	decodeErr := errors.New("corrupt")
	r := &mocks.Renderer{
		DecodeImageFunc: func([]byte, ports.ImageFormat) (image.Image, error) { return nil, decodeErr },
	}
	seq, err := NewImageSequence(fs, r, "frames")
	if err != nil {
		t.Fatalf("NewImageSequence failed: %v", err)
	}
	if err := seq.Frame(0, pixel.NewPixmap(8, 8, pixel.FormatRGB888)); !errors.Is(err, decodeErr) {
		t.Errorf("expected decode error, got %v", err)
	}
}
