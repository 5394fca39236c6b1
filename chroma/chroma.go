// Package chroma turns a magenta keyed background into alpha transparency.
package chroma

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"spriteproc/raster"
)

// DefaultThreshold is the hard cutoff distance from the key colour.
const DefaultThreshold = 60

// softBand is the upper bound of the soft edge ramp, relative to the threshold.
const softBand = 1.5

// Key is the background colour removed by Extract.
var Key = color.NRGBA{R: 255, G: 0, B: 255, A: 255}

var ErrInvalidThreshold = errors.New("invalid chroma threshold")

// Validate checks that threshold yields a non-empty soft edge band.
func Validate(threshold float64) error {
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Distance is the Euclidean RGB distance of (r, g, b) from Key.
func Distance(r, g, b uint8) float64 {
	dr := float64(r) - float64(Key.R)
	dg := float64(g) - float64(Key.G)
	db := float64(b) - float64(Key.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Alpha classifies a single pixel and returns its new alpha.
//
// Pixels closer than threshold to the key become transparent, pixels in
// [threshold, 1.5*threshold) get a linear ramp capped by their original alpha,
// everything else keeps a.
func Alpha(r, g, b, a uint8, threshold float64) uint8 {
	return ramp(Distance(r, g, b), a, threshold)
}

func ramp(d float64, a uint8, threshold float64) uint8 {
	switch {
	case d < threshold:
		return 0
	case d < threshold*softBand:
		v := 255 * (d - threshold) / (threshold * (softBand - 1))
		return uint8(math.Min(float64(a), v))
	default:
		return a
	}
}

// Extract returns a copy of img with the key colour removed. Fully keyed
// pixels become transparent black, soft edge pixels keep their colour with a
// reduced alpha. img is not modified.
func Extract(img image.Image, threshold float64) (*image.NRGBA, error) {
	if err := Validate(threshold); err != nil {
		return nil, err
	}

	out := raster.Clone(img)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		p := out.Pix[i : i+4 : i+4]
		d := Distance(p[0], p[1], p[2])
		if d < threshold {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
			continue
		}
		p[3] = ramp(d, p[3], threshold)
	}
	return out, nil
}
