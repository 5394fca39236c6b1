// Package raster holds the pixel buffer helpers shared by the pipeline stages.
package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Clone returns a freshly allocated non-premultiplied copy of img whose
// bounds start at the origin. The result shares no memory with img.
func Clone(img image.Image) *image.NRGBA {
	sb := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		for y := range sb.Dy() {
			so := src.PixOffset(sb.Min.X, sb.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*sb.Dx()], src.Pix[so:so+4*sb.Dx()])
		}
		return dst
	}

	draw.Draw(dst, dst.Bounds(), img, sb.Min, draw.Src)
	return dst
}

// Empty reports whether img has no pixels.
func Empty(img image.Image) bool {
	return img.Bounds().Empty()
}
