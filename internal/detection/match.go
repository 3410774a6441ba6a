package detection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/invader-radar/internal/grid"
)

// Match is a surviving detection of a pattern in radar data.
type Match struct {
	// Name is the pattern name.
	Name string `json:"name"`

	// ScanX, ScanY locate the window in the enlarged grid.
	ScanX int `json:"scan_x"`
	ScanY int `json:"scan_y"`

	// FieldX, FieldY locate the top-left cell in the original radar grid,
	// clamped at zero for patterns hanging off the top or left edge.
	FieldX int `json:"x"`
	FieldY int `json:"y"`

	// Width, Height are the pattern dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Score is the window score in (0, 1].
	Score float64 `json:"score"`
}

// String describes the match.
func (m Match) String() string {
	return fmt.Sprintf("%s at %d, %d with score %.2f", m.Name, m.FieldX, m.FieldY, m.Score)
}

// BuildMatches emits one Match for every positive cell of a peak surface.
//
// Field coordinates are max(0, scan - floor(dimension/2)), which undoes the
// padding added by grid.Enlarge.
func BuildMatches(peaks *mat.Dense, p grid.Pattern) []Match {
	if peaks == nil {
		return nil
	}

	halfW := p.Width() / 2
	halfH := p.Height() / 2

	var matches []Match
	rows, _ := peaks.Dims()
	for y := 0; y < rows; y++ {
		for x, score := range peaks.RawRowView(y) {
			if score <= 0 {
				continue
			}
			matches = append(matches, Match{
				Name:   p.Name,
				ScanX:  x,
				ScanY:  y,
				FieldX: max(0, x-halfW),
				FieldY: max(0, y-halfH),
				Width:  p.Width(),
				Height: p.Height(),
				Score:  score,
			})
		}
	}
	return matches
}

// Overlaps reports whether the field rectangles of a and b intersect.
// Rectangles that only touch along an edge count as overlapping.
func Overlaps(a, b Match) bool {
	if a.FieldX > b.FieldX+b.Width || a.FieldX+a.Width < b.FieldX {
		return false
	}
	if a.FieldY > b.FieldY+b.Height || a.FieldY+a.Height < b.FieldY {
		return false
	}
	return true
}

// OverlapGroup returns the indices of every member of all that overlaps m,
// in input order. If m is itself in all, its index is included.
func OverlapGroup(m Match, all []Match) []int {
	var group []int
	for i, other := range all {
		if Overlaps(m, other) {
			group = append(group, i)
		}
	}
	return group
}

// Resolve reduces candidates to an overlap-free set of matches.
//
// Candidates are grouped into clusters: two candidates share a cluster when
// they overlap directly or through a chain of overlapping candidates. Each
// cluster contributes its highest-scoring member, ties going to the earliest
// in input order. Clusters are emitted in the input order of their first
// member. Membership is tracked by index, so two candidates with identical
// fields are still distinct.
//
// Winners of different clusters never overlap, otherwise the clusters would
// have been one.
func Resolve(all []Match) []Match {
	assigned := make([]bool, len(all))
	var result []Match

	for i := range all {
		if assigned[i] {
			continue
		}

		assigned[i] = true
		best := i
		queue := []int{i}
		for len(queue) > 0 {
			k := queue[0]
			queue = queue[1:]
			for _, j := range OverlapGroup(all[k], all) {
				if assigned[j] {
					continue
				}
				assigned[j] = true
				queue = append(queue, j)
				if all[j].Score > all[best].Score || (all[j].Score == all[best].Score && j < best) {
					best = j
				}
			}
		}

		result = append(result, all[best])
	}

	return result
}
