package sprite

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// DefaultSize is the canonical output width and height.
const DefaultSize = 320

// Fit decides how the source aspect ratio maps onto the target size.
type Fit string

const (
	// FitStretch scales to exactly the target size.
	FitStretch Fit = "stretch"
	// FitPad keeps the aspect ratio and centres the sprite on a transparent canvas.
	FitPad Fit = "pad"
	// FitCrop keeps the aspect ratio and trims the longer side.
	FitCrop Fit = "crop"
)

var interpolators = map[string]draw.Interpolator{
	"catmullrom":     draw.CatmullRom,
	"bilinear":       draw.BiLinear,
	"approxbilinear": draw.ApproxBiLinear,
	"nearest":        draw.NearestNeighbor,
}

// Interpolator returns the named resampling filter.
func Interpolator(name string) (draw.Interpolator, error) {
	if name == "" {
		return draw.CatmullRom, nil
	}
	interp, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("unsupported filter: %s", name)
	}
	return interp, nil
}

// Resample returns img scaled to width x height. The output always has exactly
// the requested size; with FitPad the uncovered area stays transparent.
func Resample(img image.Image, width, height int, fit Fit, interp draw.Interpolator) (*image.NRGBA, error) {
	srcBounds := img.Bounds()
	if srcBounds.Empty() {
		return nil, fmt.Errorf("%w: empty source image", ErrInvalidDimensions)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", ErrInvalidDimensions, width, height)
	}
	if interp == nil {
		interp = draw.CatmullRom
	}

	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())
	destWidth := float64(width)
	destHeight := float64(height)

	destSize := image.Rect(0, 0, width, height)
	destBounds := destSize

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	switch fit {
	case FitCrop:
		if srcAR < destAR {
			dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
			srcBounds.Min.Y += dh
			srcBounds.Max.Y -= dh
		} else if srcAR > destAR {
			dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
			srcBounds.Min.X += dw
			srcBounds.Max.X -= dw
		}
	case FitPad:
		if srcAR < destAR {
			idw := int(math.Round((destWidth - destHeight*srcAR) / 2))
			destBounds.Min.X += idw
			destBounds.Max.X -= idw
		} else if srcAR > destAR {
			idh := int(math.Round((destHeight - destWidth/srcAR) / 2))
			destBounds.Min.Y += idh
			destBounds.Max.Y -= idh
		}
	case FitStretch, "":
	default:
		return nil, fmt.Errorf("unsupported fit mode: %s", fit)
	}
	if srcBounds.Empty() || destBounds.Empty() {
		return nil, fmt.Errorf("%w: %dx%d cannot be fitted into %dx%d",
			ErrInvalidDimensions, img.Bounds().Dx(), img.Bounds().Dy(), width, height)
	}

	dest := image.NewNRGBA(destSize)
	interp.Scale(dest, destBounds, img, srcBounds, draw.Src, nil)
	return dest, nil
}
