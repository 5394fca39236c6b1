package palette

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ReadHex reads a palette with one hex colour per line, as exported by most
// pixel art tools. Blank lines and lines starting with ';' or "//" are
// skipped, and the leading '#' is optional.
func ReadHex(r io.Reader) (*Palette, error) {
	var colors []RGB

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ";") || strings.HasPrefix(s, "//") {
			continue
		}
		if !strings.HasPrefix(s, "#") {
			s = "#" + s
		}

		col, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid color on line %d %q: %w", line, s, err)
		}
		cr, cg, cb := col.RGB255()
		colors = append(colors, RGB{R: cr, G: cg, B: cb})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read hex palette: %w", err)
	}

	return New(colors)
}

// WriteHex writes one "#rrggbb" line per entry.
func (p *Palette) WriteHex(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	for _, c := range p.colors {
		col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		if _, err := fmt.Fprintln(bw, col.Hex()); err != nil {
			return 0, fmt.Errorf("could not write color %s: %w", c, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("could not flush hex palette: %w", err)
	}
	return int64(len(p.colors)), nil
}
