package detection

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/invader-radar/internal/grid"
)

// ErrUnknownBounds is returned by ParseScanBounds for unsupported names.
var ErrUnknownBounds = errors.New("unknown scan bounds")

// Scorer scores a pattern-sized window against a pattern in [0, 1].
type Scorer interface {
	Score(window, pattern grid.Grid) (float64, error)
}

// ScanBounds selects how far the sliding window travels.
type ScanBounds int

const (
	// InclusiveBounds tests every window offset that fits in the enlarged
	// grid, including the last one on each axis.
	InclusiveBounds ScanBounds = iota

	// LegacyBounds stops one offset short on each axis, so the rightmost
	// column and bottom row of window positions are never scored. Kept for
	// parity with results produced by earlier radar tooling.
	LegacyBounds
)

// String implements fmt.Stringer.
func (b ScanBounds) String() string {
	switch b {
	case InclusiveBounds:
		return "inclusive"
	case LegacyBounds:
		return "legacy"
	default:
		return fmt.Sprintf("ScanBounds(%d)", int(b))
	}
}

// ParseScanBounds parses "inclusive" or "legacy". An empty string selects
// InclusiveBounds.
func ParseScanBounds(s string) (ScanBounds, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inclusive":
		return InclusiveBounds, nil
	case "legacy", "exclusive":
		return LegacyBounds, nil
	default:
		return 0, fmt.Errorf("%w: %q (use inclusive or legacy)", ErrUnknownBounds, s)
	}
}

// Scan slides a pattern-sized window over the enlarged radar grid and scores
// every position.
//
// Returns:
//   - *mat.Dense: The score surface. Row index is the window's y offset and
//     column index its x offset, both in enlarged-grid coordinates. Nil when
//     the bounds leave no window position to score.
//   - error: Non-nil if the scorer fails.
//
// # Surface Size
//
// The enlarged grid is (W + 2*floor(pw/2)) × (H + 2*floor(ph/2)). With
// InclusiveBounds the surface has enlargedWidth-pw+1 columns and
// enlargedHeight-ph+1 rows; LegacyBounds drops the last of each.
func Scan(g grid.Grid, p grid.Pattern, scorer Scorer, bounds ScanBounds) (*mat.Dense, error) {
	enlarged := grid.Enlarge(g, p.Width(), p.Height())

	rows := enlarged.Height() - p.Height()
	cols := enlarged.Width() - p.Width()
	if bounds == InclusiveBounds {
		rows++
		cols++
	}
	if rows <= 0 || cols <= 0 {
		return nil, nil
	}

	surface := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			window, err := grid.Window(enlarged, p.Width(), p.Height(), x, y)
			if err != nil {
				return nil, fmt.Errorf("window (%d,%d): %w", x, y, err)
			}
			score, err := scorer.Score(window, p.Grid)
			if err != nil {
				return nil, fmt.Errorf("score (%d,%d): %w", x, y, err)
			}
			surface.Set(y, x, score)
		}
	}

	return surface, nil
}
