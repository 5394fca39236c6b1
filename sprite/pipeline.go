// Package sprite runs the post-processing pipeline that turns raw sprites
// into game-ready assets: chroma key, palette quantization, tile edge
// blending and resampling.
package sprite

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"spriteproc/chroma"
	"spriteproc/palette"
	"spriteproc/raster"
	"spriteproc/tile"

	"github.com/cenkalti/dominantcolor"
	"golang.org/x/image/draw"
)

// Stage turns one owned image into a new one.
type Stage func(img *image.NRGBA) (*image.NRGBA, error)

// Pipeline holds the per-run parameters of the post-processing stages. It
// keeps no state between images and may be shared by concurrent workers.
type Pipeline struct {
	// Threshold is the chroma key hard cutoff distance.
	Threshold float64
	// Palette enables quantization when non-nil.
	Palette *palette.Palette
	// Margin is the tile blend strip width, used for tiles only.
	Margin int

	Width, Height int
	Fit           Fit
	Interpolator  draw.Interpolator
}

// NewPipeline returns a pipeline with the default settings and the master
// palette.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Threshold:    chroma.DefaultThreshold,
		Palette:      palette.Master(),
		Margin:       tile.DefaultMargin,
		Width:        DefaultSize,
		Height:       DefaultSize,
		Fit:          FitStretch,
		Interpolator: draw.CatmullRom,
	}
}

// Validate reports parameter errors that would fail every image.
func (p *Pipeline) Validate() error {
	if err := chroma.Validate(p.Threshold); err != nil {
		return err
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: target size %dx%d", ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.Margin <= 0 {
		return fmt.Errorf("%w: tile margin %d", ErrInvalidDimensions, p.Margin)
	}
	return nil
}

// Stages lists the stages applied to an image, in order.
func (p *Pipeline) Stages(isTile bool) []Stage {
	stages := []Stage{p.extract}
	if p.Palette != nil {
		stages = append(stages, p.quantize)
	}
	if isTile {
		stages = append(stages, p.blend)
	}
	return append(stages, p.resample)
}

// Run processes img through every stage. img itself is never modified.
func (p *Pipeline) Run(logger *slog.Logger, img image.Image, isTile bool) (*image.NRGBA, error) {
	if raster.Empty(img) {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidDimensions)
	}

	cur := raster.Clone(img)
	for _, stage := range p.Stages(isTile) {
		next, err := stage(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("processed", "width", cur.Rect.Dx(), "height", cur.Rect.Dy(),
			"dominant", dominantcolor.Hex(dominantcolor.Find(cur)))
	}
	return cur, nil
}

func (p *Pipeline) extract(img *image.NRGBA) (*image.NRGBA, error) {
	return chroma.Extract(img, p.Threshold)
}

func (p *Pipeline) quantize(img *image.NRGBA) (*image.NRGBA, error) {
	return p.Palette.Quantize(img), nil
}

func (p *Pipeline) blend(img *image.NRGBA) (*image.NRGBA, error) {
	out, err := tile.Blend(img, p.Margin)
	if errors.Is(err, tile.ErrInvalidMargin) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}
	return out, err
}

func (p *Pipeline) resample(img *image.NRGBA) (*image.NRGBA, error) {
	return Resample(img, p.Width, p.Height, p.Fit, p.Interpolator)
}
