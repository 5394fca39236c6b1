package main

import (
	"log/slog"
	"os"

	"spriteproc/palette"
	"spriteproc/parallel"
	"spriteproc/sprite"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config    kong.ConfigFlag `help:"JSON file with default flag values"`
	LogLevel  slog.Level      `help:"Minimum log level (debug, info, warn, error)" default:"info" env:"SPRITEPROC_LOG_LEVEL"`
	LogFormat string          `help:"Log output format" enum:"text,json" default:"text" env:"SPRITEPROC_LOG_FORMAT"`
	Workers   int             `help:"Number of parallel workers for batch processing, 0 for one per CPU" default:"0" env:"SPRITEPROC_WORKERS"`

	Process sprite.CLICmd  `cmd:"" help:"Turn raw sprites into game-ready assets"`
	Palette palette.CLICmd `cmd:"" help:"Inspect, export or derive palettes"`
}

func setupLogging(level slog.Level, format string) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("spriteproc"),
		kong.Description("Offline post-processing for game sprites: chroma key, palette, seamless tiles, resize."),
		kong.UsageOnError(),
		sprite.Vars(),
		kong.Configuration(kong.JSON, ".spriteproc.json", "~/.config/spriteproc/config.json"),
	)

	setupLogging(c.LogLevel, c.LogFormat)
	slog.Debug("running", "command", kctx.Command())

	pool := parallel.Start(c.Workers)
	err := kctx.Run(pool)
	pool.Wait()
	kctx.FatalIfErrorf(err)
}
