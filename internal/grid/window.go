package grid

import "fmt"

// Window extracts a width×height block whose top-left cell is (x, y).
//
// Returns:
//   - Grid: The extracted block. When x+width or y+height runs past the grid
//     the block is truncated to what is available; this is not an error.
//   - error: ErrNegativeOffset if x or y is negative, ErrOversizedWindow if
//     width or height exceeds the grid's own size.
//
// The returned grid shares row storage with g.
func Window(g Grid, width, height, x, y int) (Grid, error) {
	if x < 0 || y < 0 {
		return Grid{}, fmt.Errorf("%w: (%d,%d)", ErrNegativeOffset, x, y)
	}
	if width > g.Width() || height > g.Height() {
		return Grid{}, fmt.Errorf("%w: %dx%d requested from %dx%d",
			ErrOversizedWindow, width, height, g.Width(), g.Height())
	}

	y2 := min(y+height, g.Height())
	x1 := min(x, g.Width())
	x2 := min(x+width, g.Width())

	var rows [][]rune
	if y < y2 {
		rows = make([][]rune, 0, y2-y)
		for _, r := range g.rows[y:y2] {
			rows = append(rows, r[x1:x2:x2])
		}
	}

	return Grid{rows: rows, width: x2 - x1, padding: g.padding}, nil
}

// Enlarge pads g with floor(patternHeight/2) rows above and below and
// floor(patternWidth/2) columns on the left and right, using the grid's
// padding character.
//
// A window at (x, y) of the enlarged grid covers the field cells starting at
// (x - patternWidth/2, y - patternHeight/2).
func Enlarge(g Grid, patternWidth, patternHeight int) Grid {
	halfW := patternWidth / 2
	halfH := patternHeight / 2
	pad := g.Padding()
	width := g.Width() + 2*halfW

	blank := make([]rune, width)
	for i := range blank {
		blank[i] = pad
	}

	rows := make([][]rune, 0, g.Height()+2*halfH)
	for i := 0; i < halfH; i++ {
		rows = append(rows, blank)
	}
	for _, r := range g.rows {
		row := make([]rune, 0, width)
		row = append(row, blank[:halfW]...)
		row = append(row, r...)
		row = append(row, blank[:halfW]...)
		rows = append(rows, row)
	}
	for i := 0; i < halfH; i++ {
		rows = append(rows, blank)
	}

	return Grid{rows: rows, width: width, padding: pad}
}
