package sprite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// checkOutputDir fails when dest exists and is not a directory.
func checkOutputDir(dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: cannot stat destination %q: %w", ErrUnwritableOutput, dest, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: destination %q is not a directory", ErrUnwritableOutput, dest)
	}
	return nil
}

// outputName maps an input file name onto an output file name with the
// extension of format.
func outputName(srcName, suffix, format string) string {
	base := filepath.Base(srcName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s%s.%s", stem, suffix, format)
}
