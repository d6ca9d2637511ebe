package ggrenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/framemux/pkg/ports"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	img := r.CreateCanvas(100, 60, color.White).ToImage()
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 60 {
		t.Errorf("expected 100x60, got %dx%d", b.Dx(), b.Dy())
	}
	if red, _, _, _ := img.At(50, 30).RGBA(); red != 0xffff {
		t.Error("expected white background")
	}
}

func TestRenderer_EncodeDecode(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	for _, format := range []ports.ImageFormat{ports.FormatPNG, ports.FormatJPEG} {
		data, err := r.EncodeImage(img, format, 90)
		if err != nil {
			t.Fatalf("format %d: EncodeImage failed: %v", format, err)
		}

		// auto detection must agree with the explicit decoder
		for _, decodeAs := range []ports.ImageFormat{format, ports.FormatAuto} {
			decoded, err := r.DecodeImage(data, decodeAs)
			if err != nil {
				t.Fatalf("format %d as %d: DecodeImage failed: %v", format, decodeAs, err)
			}
			if b := decoded.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
				t.Errorf("format %d: expected 40x30, got %dx%d", format, b.Dx(), b.Dy())
			}
		}
	}

	if _, err := r.EncodeImage(img, ports.FormatAuto, 0); err == nil {
		t.Error("expected error when encoding without a concrete format")
	}
	if _, err := r.DecodeImage([]byte("not an image"), ports.FormatAuto); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()

	resized := r.ResizeImage(image.NewRGBA(image.Rect(0, 0, 100, 100)), 50, 20)
	if b := resized.Bounds(); b.Dx() != 50 || b.Dy() != 20 {
		t.Errorf("expected 50x20, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestCanvas_DrawShapes(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.Transparent)

	canvas.DrawRect(10, 10, 30, 30, color.RGBA{R: 255, A: 255})
	canvas.DrawRoundedRect(50, 50, 40, 40, 8, color.RGBA{G: 255, A: 255})

	img := canvas.ToImage()
	if red, _, _, _ := img.At(20, 20).RGBA(); red == 0 {
		t.Error("expected red pixel inside rectangle")
	}
	if _, green, _, _ := img.At(70, 70).RGBA(); green == 0 {
		t.Error("expected green pixel inside rounded rectangle")
	}
	if _, _, _, a := img.At(5, 95).RGBA(); a != 0 {
		t.Error("expected untouched pixel to stay transparent")
	}
}

func TestCanvas_DrawImage(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	small := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			small.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	canvas.DrawImage(small, 10, 10)

	if red, _, blue, _ := canvas.ToImage().At(15, 15).RGBA(); red != 0 || blue == 0 {
		t.Error("expected blue pixel from drawn image")
	}
}

func TestCanvas_Text(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(200, 40, color.Black)
	style := ports.TextStyle{FontSize: 13, Color: color.White, Align: ports.AlignLeft}

	w, h := canvas.MeasureText("frame 12", style)
	if w <= 0 || h <= 0 {
		t.Fatalf("expected positive text extent, got %vx%v", w, h)
	}

	canvas.DrawText("frame 12", 4, 20, style)
	img := canvas.ToImage()

	lit := false
	for y := 0; y < 40 && !lit; y++ {
		for x := 0; x < int(w)+8; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0x8000 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("expected text pixels to be drawn")
	}
}
