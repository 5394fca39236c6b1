package palette

import (
	"image"

	"spriteproc/raster"
)

// MinAlpha is the lowest alpha a pixel needs to be snapped to the palette.
// Fainter pixels are left alone so no colour appears at transparent edges.
const MinAlpha = 10

// Quantize returns a copy of img where every pixel with alpha >= MinAlpha has
// its colour replaced by the nearest palette entry. Alpha is preserved.
func (p *Palette) Quantize(img image.Image) *image.NRGBA {
	out := raster.Clone(img)

	cache := make(map[RGB]RGB, len(p.colors)*4)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		px := out.Pix[i : i+4 : i+4]
		if px[3] < MinAlpha {
			continue
		}

		c := RGB{R: px[0], G: px[1], B: px[2]}
		n, ok := cache[c]
		if !ok {
			n = p.Nearest(c)
			cache[c] = n
		}
		px[0], px[1], px[2] = n.R, n.G, n.B
	}
	return out
}
