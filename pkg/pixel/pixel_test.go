package pixel

import (
	"image"
	"image/color"
	"testing"
)

func TestPackRGBA(t *testing.T) {
	got := PackRGBA(0x11, 0x22, 0x33, 0x44)
	if got != 0x11223344 {
		t.Errorf("expected 0x11223344, got %#x", got)
	}
}

func TestPackRGB(t *testing.T) {
	got := PackRGB(0xAA, 0xBB, 0xCC)
	if got != 0x00AABBCC {
		t.Errorf("expected 0x00aabbcc, got %#x", got)
	}
}

func TestPixmap_SetPixelOutOfBounds(t *testing.T) {
	p := NewPixmap(4, 3, FormatRGBA8888)

	p.SetPixel(-1, 0, 1)
	p.SetPixel(4, 0, 1)
	p.SetPixel(0, 3, 1)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if p.Pixel(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) modified by out-of-bounds write", x, y)
			}
		}
	}
	if p.Pixel(10, 10) != 0 {
		t.Error("expected 0 for out-of-bounds read")
	}
}

func TestPixmap_Fill(t *testing.T) {
	p := NewPixmap(5, 5, FormatRGB888)
	p.Fill(0x123456)

	if p.Pixel(4, 4) != 0x123456 {
		t.Errorf("expected filled value, got %#x", p.Pixel(4, 4))
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	p := FromImage(img, FormatRGBA8888)
	if p.Width() != 2 || p.Height() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", p.Width(), p.Height())
	}
	if got := p.Pixel(1, 0); got != PackRGBA(10, 20, 30, 255) {
		t.Errorf("expected %#x, got %#x", PackRGBA(10, 20, 30, 255), got)
	}

	rgb := FromImage(img, FormatRGB888)
	if got := rgb.Pixel(1, 0); got != PackRGB(10, 20, 30) {
		t.Errorf("expected %#x, got %#x", PackRGB(10, 20, 30), got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"rgba8888", FormatRGBA8888},
		{"RGBA", FormatRGBA8888},
		{"rgb888", FormatRGB888},
		{"rgb565", FormatRGB565},
		{"alpha", FormatAlpha},
		{"bgra", FormatUnknown},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.want != FormatUnknown && ParseFormat(tt.want.String()) != tt.want {
			t.Errorf("String/ParseFormat round trip failed for %v", tt.want)
		}
	}
}

func TestUnpack(t *testing.T) {
	tests := []struct {
		format     Format
		v          uint32
		r, g, b, a uint8
	}{
		{FormatRGBA8888, 0x11223344, 0x11, 0x22, 0x33, 0x44},
		{FormatRGB888, 0x112233, 0x11, 0x22, 0x33, 255},
		{FormatAlpha, 0x80, 0, 0, 0, 0x80},
		{FormatRGB565, 0xFFFF, 255, 255, 255, 255},
		{FormatUnknown, 0xFFFFFFFF, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b, a := Unpack(tt.format, tt.v)
		if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
			t.Errorf("%s %#x: got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
				tt.format, tt.v, r, g, b, a, tt.r, tt.g, tt.b, tt.a)
		}
	}

	if r, g, b, a := Unpack(FormatRGBA8888, Pack(FormatRGBA8888, 1, 2, 3, 4)); r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("Pack and Unpack disagree: %d %d %d %d", r, g, b, a)
	}
}

func TestPixmap_ToImage(t *testing.T) {
	p := NewPixmap(2, 1, FormatRGB565)
	p.SetPixel(0, 0, Pack(FormatRGB565, 255, 0, 0, 255))
	p.SetPixel(1, 0, Pack(FormatRGB565, 0, 0, 255, 255))

	img := p.ToImage()
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("pixel 0: got %v", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("pixel 1: got %v", got)
	}
}
