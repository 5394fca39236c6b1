package tile

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func makeTestImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: uint8(255 - x),
			})
		}
	}
	return img
}

// makeStripes varies only along x, so the vertical pass leaves columns intact.
func makeStripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 5), G: uint8(255 - x*3), B: uint8(x * x), A: 255})
		}
	}
	return img
}

func column(img *image.NRGBA, x int) []color.NRGBA {
	h := img.Bounds().Dy()
	col := make([]color.NRGBA, h)
	for y := range h {
		col[y] = img.NRGBAAt(x, y)
	}
	return col
}

func TestBlend_SeamColumns(t *testing.T) {
	const w, h, m = 64, 40, 16
	src := makeStripes(w, h)

	out, err := Blend(src, m)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}

	first, opposite := column(out, 0), column(src, w-m)
	for y := range h {
		if first[y] != opposite[y] {
			t.Fatalf("out(0,%d) = %v, want original (%d,%d) = %v", y, first[y], w-m, y, opposite[y])
		}
	}

	inner, orig := column(out, m-1), column(src, m-1)
	for y := range h {
		if d := int(inner[y].R) - int(orig[y].R); d < -16 || d > 16 {
			t.Fatalf("out(%d,%d) = %v, too far from original %v", m-1, y, inner[y], orig[y])
		}
	}

	for y := range h {
		for x := m; x < w-m; x++ {
			if out.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				t.Fatalf("interior pixel (%d,%d) changed", x, y)
			}
		}
	}
}

func TestBlendColumns_Exact(t *testing.T) {
	const w, h, m = 48, 20, 8
	src := makeTestImage(w, h)
	out := blendColumns(src, m)

	for y := range h {
		if out.NRGBAAt(0, y) != src.NRGBAAt(w-m, y) {
			t.Fatalf("left edge row %d = %v, want %v", y, out.NRGBAAt(0, y), src.NRGBAAt(w-m, y))
		}
		if out.NRGBAAt(w-m, y) != src.NRGBAAt(0, y) {
			t.Fatalf("right strip start row %d = %v, want %v", y, out.NRGBAAt(w-m, y), src.NRGBAAt(0, y))
		}
		l, r := src.NRGBAAt(3, y), src.NRGBAAt(w-m+3, y)
		want := uint8((3*int(l.G) + 5*int(r.G)) / 8)
		if got := out.NRGBAAt(3, y).G; got != want {
			t.Fatalf("column 3 row %d green = %d, want %d", y, got, want)
		}
		if got, want := out.NRGBAAt(3, y).A, uint8((3*int(l.A)+5*int(r.A))/8); got != want {
			t.Fatalf("column 3 row %d alpha = %d, want %d", y, got, want)
		}
	}
}

func TestBlend_RowsAfterColumns(t *testing.T) {
	const w, h, m = 32, 32, 4
	src := makeTestImage(w, h)
	out, err := Blend(src, m)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}

	cols := blendColumns(src, m)
	for x := range w {
		if out.NRGBAAt(x, 0) != cols.NRGBAAt(x, h-m) {
			t.Fatalf("top row x=%d = %v, want %v", x, out.NRGBAAt(x, 0), cols.NRGBAAt(x, h-m))
		}
	}
}

func TestBlend_DoesNotMutate(t *testing.T) {
	src := makeTestImage(16, 16)
	before := append([]uint8(nil), src.Pix...)
	if _, err := Blend(src, 4); err != nil {
		t.Fatalf("Blend: %v", err)
	}
	for i := range before {
		if before[i] != src.Pix[i] {
			t.Fatalf("Blend mutated its input at byte %d", i)
		}
	}
}

func TestBlend_UniformIsFixedPoint(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []uint8{106, 176, 76, 255})
	}
	out, err := Blend(src, 5)
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("uniform tile changed at byte %d", i)
		}
	}
}

func TestBlend_Margin(t *testing.T) {
	for _, tc := range []struct {
		name   string
		w, h   int
		margin int
		ok     bool
	}{
		{name: "default", w: 320, h: 320, margin: DefaultMargin, ok: true},
		{name: "half_width", w: 32, h: 64, margin: 16, ok: true},
		{name: "over_half_width", w: 32, h: 64, margin: 17, ok: false},
		{name: "over_half_height", w: 64, h: 20, margin: 11, ok: false},
		{name: "zero", w: 32, h: 32, margin: 0, ok: false},
		{name: "negative", w: 32, h: 32, margin: -2, ok: false},
		{name: "empty_image", w: 0, h: 0, margin: 1, ok: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Blend(image.NewNRGBA(image.Rect(0, 0, tc.w, tc.h)), tc.margin)
			if tc.ok && err != nil {
				t.Fatalf("Blend: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidMargin) {
				t.Fatalf("err = %v, want ErrInvalidMargin", err)
			}
		})
	}
}
