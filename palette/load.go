package palette

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MasterName selects the built-in palette in Load.
const MasterName = "master"

// Load returns the palette called name: the master palette for "" or
// MasterName, otherwise a palette file. Files ending in .pal are read as
// RIFF PAL documents, .png as paletted swatches, anything else as a hex list.
func Load(name string) (*Palette, error) {
	if name == "" || name == MasterName {
		return Master(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "file", name, "error", closeErr)
		}
	}()

	var p *Palette
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pal":
		p, err = ReadRIFF(f)
	case ".png":
		p, err = ReadSwatch(f)
	default:
		p, err = ReadHex(f)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}
	return p, nil
}

// Save writes p to name using the format implied by its extension, as Load
// would read it back.
func (p *Palette) Save(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", name, closeErr)
		}
	}()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pal":
		_, err = p.WriteRIFF(f)
	case ".png":
		err = p.WriteSwatch(f)
	default:
		_, err = p.WriteHex(f)
	}
	if err != nil {
		return fmt.Errorf("could not save palette %q: %w", name, err)
	}
	return nil
}
