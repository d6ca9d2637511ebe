package framesource

import (
	"image"

	"github.com/user/framemux/pkg/pixel"
)

// blendOver composites src (premultiplied, as image.Image reports it) onto
// dst with its top-left corner at (x0, y0).
func blendOver(dst *pixel.Pixmap, src image.Image, x0, y0 int) {
	b := src.Bounds()
	format := dst.Format()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			sr, sg, sb, sa := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if sa == 0 {
				continue
			}
			dx, dy := x0+x, y0+y
			if dx >= dst.Width() || dy >= dst.Height() {
				continue
			}

			dr, dg, db, da := pixel.Unpack(format, dst.Pixel(dx, dy))
			inv := 0xffff - sa
			r := (sr + uint32(dr)*0x101*inv/0xffff) >> 8
			g := (sg + uint32(dg)*0x101*inv/0xffff) >> 8
			bl := (sb + uint32(db)*0x101*inv/0xffff) >> 8
			a := (sa + uint32(da)*0x101*inv/0xffff) >> 8
			dst.SetPixel(dx, dy, pixel.Pack(format, uint8(r), uint8(g), uint8(bl), uint8(a)))
		}
	}
}
