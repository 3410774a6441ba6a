package grid

import (
	"fmt"
	"strings"
)

// DefaultPadding is the empty-cell character of radar data.
const DefaultPadding = '-'

// Grid is an immutable rectangular block of characters.
//
// The zero value is an empty grid with no rows. Use New or Parse to build a
// validated grid.
type Grid struct {
	rows    [][]rune
	width   int
	padding rune
}

// New builds a grid from rows of equal length.
//
// Parameters:
//   - rows: The grid rows, top to bottom. Every row must have the same number
//     of characters (counted in runes) and at least one character.
//   - padding: The character used by Enlarge. Zero selects DefaultPadding.
//
// Returns an error wrapping ErrValidation if rows is empty or ragged.
func New(rows []string, padding rune) (Grid, error) {
	if padding == 0 {
		padding = DefaultPadding
	}
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("%w: no rows", ErrValidation)
	}

	cells := make([][]rune, len(rows))
	width := -1
	for i, row := range rows {
		r := []rune(row)
		if len(r) == 0 {
			return Grid{}, fmt.Errorf("%w: row %d is empty", ErrValidation, i)
		}
		if width >= 0 && len(r) != width {
			return Grid{}, fmt.Errorf("%w: row %d has width %d, want %d", ErrValidation, i, len(r), width)
		}
		width = len(r)
		cells[i] = r
	}

	return Grid{rows: cells, width: width, padding: padding}, nil
}

// Parse builds a grid from free-form text. Rows are separated by any
// whitespace, so indented literals and trailing newlines are accepted.
func Parse(text string, padding rune) (Grid, error) {
	return New(strings.Fields(text), padding)
}

// Width returns the number of columns.
func (g Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g Grid) Height() int { return len(g.rows) }

// Padding returns the padding character.
func (g Grid) Padding() rune {
	if g.padding == 0 {
		return DefaultPadding
	}
	return g.padding
}

// Empty reports whether the grid has no cells.
func (g Grid) Empty() bool { return len(g.rows) == 0 || g.width == 0 }

// At returns the character at (x, y). The caller must stay within bounds.
func (g Grid) At(x, y int) rune { return g.rows[y][x] }

// Row returns row y as a string.
func (g Grid) Row(y int) string { return string(g.rows[y]) }

// Rows returns all rows as strings, top to bottom.
func (g Grid) Rows() []string {
	out := make([]string, len(g.rows))
	for i, r := range g.rows {
		out[i] = string(r)
	}
	return out
}

// Columns returns the transposed grid as strings, left to right.
func (g Grid) Columns() []string {
	if g.Empty() {
		return nil
	}
	out := make([]string, g.width)
	col := make([]rune, len(g.rows))
	for x := 0; x < g.width; x++ {
		for y, r := range g.rows {
			col[y] = r[x]
		}
		out[x] = string(col)
	}
	return out
}

// String renders the grid one row per line.
func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Pattern is a named grid searched for inside radar data.
type Pattern struct {
	Name string
	Grid
}

// NewPattern builds a validated pattern.
func NewPattern(name string, rows []string) (Pattern, error) {
	g, err := New(rows, DefaultPadding)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", name, err)
	}
	return Pattern{Name: name, Grid: g}, nil
}

// ParsePattern builds a pattern from whitespace separated rows.
func ParsePattern(name, text string) (Pattern, error) {
	return NewPattern(name, strings.Fields(text))
}

// String describes the pattern.
func (p Pattern) String() string {
	return fmt.Sprintf("Invader %s, width: %d, height: %d", p.Name, p.Width(), p.Height())
}

// Fits reports whether p is no larger than g on both axes.
func (p Pattern) Fits(g Grid) bool {
	return p.Width() <= g.Width() && p.Height() <= g.Height()
}
