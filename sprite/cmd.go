package sprite

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"spriteproc/chroma"
	"spriteproc/palette"
	"spriteproc/parallel"
	"spriteproc/raster"
	"spriteproc/tile"

	"github.com/alecthomas/kong"
)

// GroundTiles are the file names that always get edge blending.
var GroundTiles = []string{
	"ground.png",
	"ground_grass.png",
	"ground_dirt.png",
	"ground_sand.png",
	"park_ground.png",
}

// Vars holds the interpolated defaults used in CLICmd tags.
func Vars() kong.Vars {
	return kong.Vars{
		"default_size":      strconv.Itoa(DefaultSize),
		"default_margin":    strconv.Itoa(tile.DefaultMargin),
		"default_threshold": strconv.Itoa(chroma.DefaultThreshold),
		"ground_tiles":      strings.Join(GroundTiles, ","),
		"formats":           strings.Join(Formats, ","),
	}
}

type CLICmd struct {
	Input  string `arg:"" help:"Sprite file or folder of sprites to process"`
	Output string `help:"Output file for a single sprite, output folder for a batch. Defaults to <name>_processed.<format> next to the input, or <folder>/processed" short:"o"`
	Format string `help:"Lossless output format" enum:"${formats}" default:"png" env:"SPRITEPROC_FORMAT"`

	Threshold float64 `help:"Distance from magenta below which pixels become transparent" default:"${default_threshold}" group:"key"`

	NoQuantize bool   `help:"Skip palette quantization" group:"palette"`
	Palette    string `help:"Palette to snap colors to: 'master', a RIFF .pal file, a .png swatch or a hex list" default:"master" env:"SPRITEPROC_PALETTE" group:"palette"`

	Tile   bool     `help:"Blend edges of every input for seamless tiling" group:"tile"`
	Margin int      `help:"Width in pixels of the blended edge strips" default:"${default_margin}" group:"tile"`
	Ground []string `help:"File names always treated as ground tiles" default:"${ground_tiles}" group:"tile"`

	Size   int    `help:"Output width and height" default:"${default_size}" env:"SPRITEPROC_SIZE" group:"resize"`
	Width  int    `help:"Output width, overrides --size" group:"resize"`
	Height int    `help:"Output height, overrides --size" group:"resize"`
	Fit    Fit    `help:"How to handle aspect ratio changes" enum:"stretch,pad,crop" default:"stretch" group:"resize"`
	Filter string `help:"Resampling filter" enum:"catmullrom,bilinear,approxbilinear,nearest" default:"catmullrom" group:"resize"`

	Batch     bool            `kong:"-"`
	Pipeline  *Pipeline       `kong:"-"`
	GroundSet map[string]bool `kong:"-"`
}

// Stats counts the outcome of a run.
type Stats struct {
	Processed uint64
	Failed    uint64
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	input, err := filepath.Abs(c.Input)
	if err != nil {
		return fmt.Errorf("invalid input path %q: %w", c.Input, err)
	}
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInputNotFound, c.Input, err)
	}
	c.Input = input
	c.Batch = info.IsDir()

	if c.Output == "" {
		if c.Batch {
			c.Output = filepath.Join(input, "processed")
		} else {
			c.Output = filepath.Join(filepath.Dir(input), outputName(input, "_processed", c.Format))
		}
	}
	if c.Batch {
		if err := checkOutputDir(c.Output); err != nil {
			return err
		}
	}

	p := NewPipeline()
	p.Threshold = c.Threshold
	p.Margin = c.Margin
	p.Fit = c.Fit
	p.Width, p.Height = c.Size, c.Size
	if c.Width != 0 {
		p.Width = c.Width
	}
	if c.Height != 0 {
		p.Height = c.Height
	}
	if p.Interpolator, err = Interpolator(c.Filter); err != nil {
		return err
	}
	if c.NoQuantize {
		p.Palette = nil
	} else if p.Palette, err = palette.Load(c.Palette); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	c.Pipeline = p

	c.GroundSet = make(map[string]bool, len(c.Ground))
	for _, name := range c.Ground {
		c.GroundSet[name] = true
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if !c.Batch {
		return c.processFile(slog.Default().With("file", c.Input), c.Input, c.Output)
	}

	stats, err := c.processDir(pool)
	slog.Info("stats", "processed", stats.Processed, "errors", stats.Failed,
		"total", stats.Processed+stats.Failed)
	return err
}

func (c *CLICmd) processDir(pool *parallel.Pool) (Stats, error) {
	files, err := os.ReadDir(c.Input)
	if err != nil {
		return Stats{}, fmt.Errorf("unable to read folder %q: %w", c.Input, err)
	}

	slog.Info("processing folder", "dir", c.Input, "workers", pool.Workers())

	var processedCount, errCount atomic.Uint64
	var queued int
	for _, file := range files {
		if file.IsDir() || !raster.IsImageName(file.Name()) {
			continue
		}
		queued++

		pool.Do(func() {
			filePath := filepath.Join(c.Input, file.Name())
			logger := slog.Default().With("file", filePath)

			dest := filepath.Join(c.Output, outputName(file.Name(), "", c.Format))
			if err := c.processFile(logger, filePath, dest); err != nil {
				errCount.Add(1)
				logger.Error("could not process sprite", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}
	pool.Wait()

	if queued == 0 {
		slog.Warn("no sprites found", "dir", c.Input)
	}

	stats := Stats{Processed: processedCount.Load(), Failed: errCount.Load()}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("error processing %d of %d files", stats.Failed, stats.Processed+stats.Failed)
	}
	return stats, nil
}

func (c *CLICmd) processFile(logger *slog.Logger, src, dest string) error {
	img, err := raster.Decode(src)
	if err != nil {
		return err
	}

	isTile := c.Tile || c.GroundSet[filepath.Base(src)]
	logger.Info("processing", "tile", isTile, "quantize", c.Pipeline.Palette != nil,
		"width", c.Pipeline.Width, "height", c.Pipeline.Height)

	out, err := c.Pipeline.Run(logger, img, isTile)
	if err != nil {
		return fmt.Errorf("could not process %q: %w", src, err)
	}

	if err := Save(out, c.Format, dest); err != nil {
		return err
	}
	logger.Info("saved", "to", dest)
	return nil
}
