package sprite

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/draw"
)

func TestResample_DimensionRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h int
		fit  Fit
	}{
		{name: "square_stretch", w: 100, h: 100, fit: FitStretch},
		{name: "wide_stretch", w: 123, h: 45, fit: FitStretch},
		{name: "tall_pad", w: 40, h: 90, fit: FitPad},
		{name: "wide_crop", w: 200, h: 50, fit: FitCrop},
	} {
		t.Run(tc.name, func(t *testing.T) {
			src := makeTestImage(tc.w, tc.h)
			up, err := Resample(src, DefaultSize, DefaultSize, tc.fit, draw.CatmullRom)
			if err != nil {
				t.Fatalf("Resample up: %v", err)
			}
			if up.Bounds() != image.Rect(0, 0, DefaultSize, DefaultSize) {
				t.Fatalf("up bounds = %v", up.Bounds())
			}

			back, err := Resample(up, tc.w, tc.h, tc.fit, draw.CatmullRom)
			if err != nil {
				t.Fatalf("Resample back: %v", err)
			}
			if back.Bounds() != src.Bounds() {
				t.Fatalf("back bounds = %v, want %v", back.Bounds(), src.Bounds())
			}
		})
	}
}

func TestResample_PadLeavesTransparentBars(t *testing.T) {
	src := makeTestImage(50, 100)
	out, err := Resample(src, 100, 100, FitPad, draw.BiLinear)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if a := out.NRGBAAt(2, 50).A; a != 0 {
		t.Fatalf("left bar alpha = %d, want 0", a)
	}
	if a := out.NRGBAAt(97, 50).A; a != 0 {
		t.Fatalf("right bar alpha = %d, want 0", a)
	}
	if a := out.NRGBAAt(50, 50).A; a != 255 {
		t.Fatalf("centre alpha = %d, want 255", a)
	}
}

func TestResample_Invalid(t *testing.T) {
	src := makeTestImage(10, 10)
	for _, tc := range []struct {
		name string
		img  image.Image
		w, h int
	}{
		{name: "zero_width", img: src, w: 0, h: 10},
		{name: "negative_height", img: src, w: 10, h: -3},
		{name: "empty_source", img: image.NewNRGBA(image.Rect(0, 0, 0, 4)), w: 10, h: 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Resample(tc.img, tc.w, tc.h, FitStretch, nil); !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("err = %v, want ErrInvalidDimensions", err)
			}
		})
	}

	if _, err := Resample(src, 10, 10, Fit("tile"), nil); err == nil {
		t.Fatalf("expected error for unknown fit")
	}
}

func TestInterpolator(t *testing.T) {
	for _, name := range []string{"", "catmullrom", "bilinear", "approxbilinear", "nearest"} {
		if _, err := Interpolator(name); err != nil {
			t.Fatalf("Interpolator(%q): %v", name, err)
		}
	}
	if _, err := Interpolator("lanczos"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}
