package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/grid"
)

// Sorted returns a copy of matches ordered top to bottom, left to right,
// then by name.
func Sorted(matches []detection.Match) []detection.Match {
	out := append([]detection.Match(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FieldY != b.FieldY {
			return a.FieldY < b.FieldY
		}
		if a.FieldX != b.FieldX {
			return a.FieldX < b.FieldX
		}
		return a.Name < b.Name
	})
	return out
}

// Excerpt returns the part of g covered by m, truncated at the grid edges.
func Excerpt(g grid.Grid, m detection.Match) ([]string, error) {
	w, err := grid.Window(g, min(m.Width, g.Width()), min(m.Height, g.Height()), m.FieldX, m.FieldY)
	if err != nil {
		return nil, err
	}
	return w.Rows(), nil
}

// Text writes the console report: a count line, then every match followed
// by the radar cells it covers.
func Text(w io.Writer, g grid.Grid, matches []detection.Match) error {
	if _, err := fmt.Fprintf(w, "Found %d candidates:\n", len(matches)); err != nil {
		return err
	}
	for _, m := range Sorted(matches) {
		rows, err := Excerpt(g, m)
		if err != nil {
			return fmt.Errorf("match %s: %w", m, err)
		}
		if _, err := fmt.Fprintf(w, "Candidate: %s\n", m); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, row); err != nil {
				return err
			}
		}
	}
	return nil
}
