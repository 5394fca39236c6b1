package sprite

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/tiff"
)

// Formats lists the lossless output formats Save can write.
var Formats = []string{"png", "qoi", "tiff"}

// Save encodes img in the given format and writes it to path through a
// temporary file in the same directory, so a failed write never leaves a
// partial output behind.
func Save(img image.Image, format, path string) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: unable to create destination folder %q: %w", ErrUnwritableOutput, dir, err)
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary destination for %q: %w", ErrUnwritableOutput, path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("%w: could not flush %q: %w", ErrUnwritableOutput, path, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("%w: could not close %q: %w", ErrUnwritableOutput, path, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("%w: could not rename to %q: %w", ErrUnwritableOutput, path, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	switch format {
	case "png", "":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("%w: could not encode PNG %q: %w", ErrUnwritableOutput, path, err)
		}
	case "qoi":
		if err = qoi.Encode(outFile, img); err != nil {
			return fmt.Errorf("%w: could not encode QOI %q: %w", ErrUnwritableOutput, path, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("%w: could not encode TIFF %q: %w", ErrUnwritableOutput, path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported output format: %s", ErrUnwritableOutput, format)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
