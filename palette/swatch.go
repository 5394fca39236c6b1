package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// SwatchSize is the side of one colour square in a swatch image.
const SwatchSize = 16

const swatchColumns = 8

var ErrNotPaletted = errors.New("swatch is not a paletted image")

// WriteSwatch writes p as a paletted PNG holding one square per entry, in
// palette order, left to right and top to bottom.
func (p *Palette) WriteSwatch(w io.Writer) error {
	if len(p.colors) > 256 {
		return fmt.Errorf("swatch holds at most 256 colors, palette has %d", len(p.colors))
	}

	cols := min(len(p.colors), swatchColumns)
	rows := (len(p.colors) + swatchColumns - 1) / swatchColumns
	img := image.NewPaletted(image.Rect(0, 0, cols*SwatchSize, rows*SwatchSize), p.ColorPalette())
	for i := range p.colors {
		x0, y0 := (i%swatchColumns)*SwatchSize, (i/swatchColumns)*SwatchSize
		for y := y0; y < y0+SwatchSize; y++ {
			for x := x0; x < x0+SwatchSize; x++ {
				img.SetColorIndex(x, y, uint8(i))
			}
		}
	}

	return png.Encode(w, img)
}

// ReadSwatch reads the palette table of a paletted PNG, as written by
// WriteSwatch or any indexed-colour editor. Alpha in the table is ignored.
func ReadSwatch(r io.Reader) (*Palette, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode swatch: %w", err)
	}
	pi, ok := img.(*image.Paletted)
	if !ok {
		return nil, ErrNotPaletted
	}

	colors := make([]RGB, 0, len(pi.Palette))
	for _, c := range pi.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		colors = append(colors, RGB{R: n.R, G: n.G, B: n.B})
	}
	return New(colors)
}
