// Package tile makes images seamless when repeated edge to edge.
package tile

import (
	"errors"
	"fmt"
	"image"

	"spriteproc/raster"
)

// DefaultMargin is the width in pixels of the cross-faded border strips.
const DefaultMargin = 16

var ErrInvalidMargin = errors.New("invalid tile margin")

// ValidateMargin checks that margin strips on opposite edges of a
// width x height image do not overlap.
func ValidateMargin(margin, width, height int) error {
	if margin <= 0 || 2*margin > min(width, height) {
		return fmt.Errorf("%w: %d for %dx%d image, must be in [1, %d]",
			ErrInvalidMargin, margin, width, height, min(width, height)/2)
	}
	return nil
}

// Blend returns a copy of img whose border strips of the given margin are
// cross-faded with the opposite edge, left/right first and then top/bottom on
// that result. The outermost column and row take the opposite edge unchanged,
// so abutting copies meet on matching pixels.
func Blend(img image.Image, margin int) (*image.NRGBA, error) {
	b := img.Bounds()
	if err := ValidateMargin(margin, b.Dx(), b.Dy()); err != nil {
		return nil, err
	}

	src := raster.Clone(img)
	return blendRows(blendColumns(src, margin), margin), nil
}

// mix returns the weighted average (i*near + (m-i)*far) / m, truncated.
func mix(near, far uint8, i, m int) uint8 {
	return uint8((i*int(near) + (m-i)*int(far)) / m)
}

func blendColumns(src *image.NRGBA, m int) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := raster.Clone(src)

	for y := range h {
		row := y * src.Stride
		for i := range m {
			lo := row + 4*i
			hi := row + 4*(w-m+i)
			for c := range 4 {
				l, r := src.Pix[lo+c], src.Pix[hi+c]
				dst.Pix[lo+c] = mix(l, r, i, m)
				dst.Pix[hi+c] = mix(r, l, i, m)
			}
		}
	}
	return dst
}

func blendRows(src *image.NRGBA, m int) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := raster.Clone(src)

	for i := range m {
		top := i * src.Stride
		bottom := (h - m + i) * src.Stride
		for x := range 4 * w {
			t, b := src.Pix[top+x], src.Pix[bottom+x]
			dst.Pix[top+x] = mix(t, b, i, m)
			dst.Pix[bottom+x] = mix(b, t, i, m)
		}
	}
	return dst
}
