package palette

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"spriteproc/raster"

	"github.com/alecthomas/kong"
)

type ShowCmd struct {
	Palette string `help:"Palette to show: 'master', a RIFF .pal file, a .png swatch or a hex list" default:"master"`
	Output  string `help:"Write the palette to this file (.pal for RIFF, .png for a swatch, anything else for hex) instead of stdout" short:"o"`
}

type DeriveCmd struct {
	Images []string `arg:"" help:"Reference images" type:"existingfile"`
	Colors int      `help:"Number of colors to derive" short:"k" default:"16"`
	Method Method   `help:"Color selection method" enum:"kmeans,dominant" default:"kmeans"`
	Output string   `help:"Destination palette file (.pal for RIFF, .png for a swatch, anything else for hex)" short:"o" required:""`
}

type CLICmd struct {
	Show   ShowCmd   `cmd:"" help:"Print or export a palette"`
	Derive DeriveCmd `cmd:"" help:"Derive a palette from reference images"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch kctx.Selected().Name {
	case "show":
		if _, err := Load(c.Show.Palette); err != nil {
			return err
		}
	case "derive":
		if c.Derive.Colors < 1 || c.Derive.Colors > 0xFFFF {
			return fmt.Errorf("invalid number of colors: %d", c.Derive.Colors)
		}
	}

	return nil
}

func (c *ShowCmd) Run() error {
	p, err := Load(c.Palette)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := p.Save(c.Output); err != nil {
			return err
		}
		slog.Info("palette saved", "palette", c.Palette, "file", c.Output, "colors", p.Len())
		return nil
	}

	_, err = p.WriteHex(os.Stdout)
	return err
}

func (c *DeriveCmd) Run() error {
	imgs := make([]image.Image, 0, len(c.Images))
	for _, name := range c.Images {
		img, err := raster.Decode(name)
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
	}

	slog.Info("deriving palette", "images", len(imgs), "colors", c.Colors, "method", c.Method)
	p, err := Derive(imgs, c.Colors, c.Method)
	if err != nil {
		return err
	}

	if err := p.Save(c.Output); err != nil {
		return err
	}
	slog.Info("palette saved", "file", c.Output, "colors", p.Len())
	return nil
}
