package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/kdtree"
)

var ErrEmptyPalette = errors.New("empty palette")

// RGB is an opaque palette entry.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns c with the given alpha.
func (c RGB) NRGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func (c RGB) dist(o RGB) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

func (c RGB) point() kdtree.Point {
	return kdtree.Point{float64(c.R), float64(c.G), float64(c.B)}
}

func pointRGB(p kdtree.Point) RGB {
	return RGB{R: uint8(p[0]), G: uint8(p[1]), B: uint8(p[2])}
}

// Palette is an ordered, immutable set of colours. It is safe for concurrent use.
//
// Entry order only matters for ties: Index always reports the lowest index
// among the entries at minimum distance, exactly like a front to back scan.
type Palette struct {
	colors []RGB
	first  map[RGB]int
	tree   *kdtree.Tree
}

// New builds a palette from colors. The slice is copied.
func New(colors []RGB) (*Palette, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}

	p := &Palette{
		colors: append([]RGB(nil), colors...),
		first:  make(map[RGB]int, len(colors)),
	}

	// kdtree.New reorders its input, and duplicate entries only need to be
	// indexed once since the earliest one always wins.
	pts := make(kdtree.Points, 0, len(colors))
	for i, c := range p.colors {
		if _, dup := p.first[c]; dup {
			continue
		}
		p.first[c] = i
		pts = append(pts, c.point())
	}
	p.tree = kdtree.New(pts, false)

	return p, nil
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns entry i.
func (p *Palette) At(i int) RGB {
	return p.colors[i]
}

// Colors returns a copy of the entries in palette order.
func (p *Palette) Colors() []RGB {
	return append([]RGB(nil), p.colors...)
}

// Contains reports whether c is one of the entries.
func (p *Palette) Contains(c RGB) bool {
	_, ok := p.first[c]
	return ok
}

// ColorPalette converts the entries into an opaque color.Palette.
func (p *Palette) ColorPalette() color.Palette {
	pal := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		pal[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return pal
}

// Index returns the index of the entry nearest to c by squared Euclidean RGB
// distance, preferring the lowest index on ties.
func (p *Palette) Index(c RGB) int {
	if i, ok := p.first[c]; ok {
		return i
	}

	q := c.point()
	_, d := p.tree.Nearest(q)

	// Squared distances between integer colours are integers, so every entry
	// within d+0.5 sits at exactly the minimum distance.
	keep := kdtree.NewDistKeeper(d + 0.5)
	p.tree.NearestSet(keep, q)

	best := math.MaxInt
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		if i := p.first[pointRGB(cd.Comparable.(kdtree.Point))]; i < best {
			best = i
		}
	}
	if best == math.MaxInt {
		return p.indexScan(c)
	}
	return best
}

// indexScan is the exhaustive reference search Index must agree with.
func (p *Palette) indexScan(c RGB) int {
	ret, bestDist := 0, math.MaxInt
	for i, v := range p.colors {
		if d := c.dist(v); d < bestDist {
			if d == 0 {
				return i
			}
			ret, bestDist = i, d
		}
	}
	return ret
}

// Nearest returns the entry nearest to c.
func (p *Palette) Nearest(c RGB) RGB {
	return p.colors[p.Index(c)]
}

// Master returns the built-in master palette shared by the whole process.
var Master = sync.OnceValue(func() *Palette {
	p, err := New(masterColors)
	if err != nil {
		panic(err)
	}
	return p
})
