package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInputNotFound = errors.New("input not found")
	ErrDecodeFailure = errors.New("could not decode image")
)

var inputExts = map[string]bool{
	".png":  true,
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".qoi":  true,
}

// IsImageName reports whether name has an extension of a decodable format.
func IsImageName(name string) bool {
	return inputExts[strings.ToLower(filepath.Ext(name))]
}

// Decode reads and decodes the image at path in any of the registered
// formats: png, gif, jpeg, bmp, tiff, webp and qoi.
func Decode(path string) (image.Image, error) {
	if err := checkInput(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDecodeFailure, path, err)
	}
	return img, nil
}

func checkInput(src string) error {
	srcFileInfo, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrInputNotFound, src)
		}
		return fmt.Errorf("cannot stat source file %q: %w", src, err)
	}
	if !srcFileInfo.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file %q: %s", ErrInputNotFound, src, srcFileInfo.Mode().String())
	}
	return nil
}
