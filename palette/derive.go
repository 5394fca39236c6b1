package palette

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how Derive picks colours.
type Method string

const (
	MethodKMeans   Method = "kmeans"
	MethodDominant Method = "dominant"
)

// maxSamples bounds the k-means dataset per image.
const maxSamples = 12000

var ErrNoSamples = errors.New("no opaque pixels to derive a palette from")

type weighted struct {
	c RGB
	w float64
}

// Derive builds a palette of at most k colours from reference images, most
// common colours first. Pixels with alpha below MinAlpha are ignored.
func Derive(imgs []image.Image, k int, method Method) (*Palette, error) {
	if k < 1 {
		return nil, fmt.Errorf("invalid palette size: %d", k)
	}

	var cands []weighted
	var err error
	switch method {
	case MethodKMeans, "":
		cands, err = deriveKMeans(imgs, k)
	case MethodDominant:
		cands, err = deriveDominant(imgs, k)
	default:
		return nil, fmt.Errorf("unsupported derive method: %s", method)
	}
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(cands, func(a, b weighted) int {
		return cmp.Compare(b.w, a.w)
	})

	colors := make([]RGB, 0, k)
	seen := make(map[RGB]bool, k)
	for _, c := range cands {
		if seen[c.c] {
			continue
		}
		seen[c.c] = true
		colors = append(colors, c.c)
		if len(colors) == k {
			break
		}
	}
	if len(colors) == 0 {
		return nil, ErrNoSamples
	}
	return New(colors)
}

func deriveKMeans(imgs []image.Image, k int) ([]weighted, error) {
	var dataset clusters.Observations
	for _, img := range imgs {
		b := img.Bounds()
		step := 1
		if n := b.Dx() * b.Dy(); n > maxSamples {
			step = int(math.Sqrt(float64(n)/float64(maxSamples))) + 1
		}

		for y := b.Min.Y; y < b.Max.Y; y += step {
			for x := b.Min.X; x < b.Max.X; x += step {
				r, g, bl, a := img.At(x, y).RGBA()
				if a>>8 < MinAlpha {
					continue
				}
				// RGBA is premultiplied; undo it so soft edges count with their true colour.
				dataset = append(dataset, clusters.Coordinates{
					float64(r) / float64(a),
					float64(g) / float64(a),
					float64(bl) / float64(a),
				})
			}
		}
	}
	if len(dataset) == 0 {
		return nil, ErrNoSamples
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil {
		return nil, fmt.Errorf("could not partition colors: %w", err)
	}

	res := make([]weighted, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 {
			continue
		}
		// Partition only recenters after a reassignment, so a run that never
		// moves a point leaves the random seed as the centre.
		c.Recenter()
		if len(c.Center) < 3 {
			continue
		}
		res = append(res, weighted{
			c: RGB{
				R: unit8(c.Center[0]),
				G: unit8(c.Center[1]),
				B: unit8(c.Center[2]),
			},
			w: float64(len(c.Observations)),
		})
	}
	return res, nil
}

func deriveDominant(imgs []image.Image, k int) ([]weighted, error) {
	byColor := make(map[RGB]float64)
	var order []RGB
	for _, img := range imgs {
		for _, c := range dominantcolor.FindWeight(img, k) {
			rgb := RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B}
			if _, ok := byColor[rgb]; !ok {
				order = append(order, rgb)
			}
			byColor[rgb] += c.Weight
		}
	}
	if len(order) == 0 {
		return nil, ErrNoSamples
	}

	res := make([]weighted, 0, len(order))
	for _, c := range order {
		res = append(res, weighted{c: c, w: byColor[c]})
	}
	return res, nil
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
