package similarity

import (
	"errors"
	"fmt"

	"github.com/antzucaro/matchr"
)

// ErrLengthMismatch is returned when positional comparisons are given lists
// of different lengths.
var ErrLengthMismatch = errors.New("length mismatch")

// Comparison holds the edit distance and ratio of one string pair.
type Comparison struct {
	Distance int     `json:"distance"`
	Ratio    float64 `json:"ratio"`
}

// Distance returns the Levenshtein distance between a and b.
func Distance(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// Ratio returns the normalized similarity of a and b in [0, 1].
//
// The distance d uses substitution cost 2 (0 for equal characters) and
// insertion/deletion cost 1, so d = len(a) + len(b) - 2*LCS(a, b). Lengths
// are counted in runes. Ratio is symmetric. If exactly one string is empty
// the ratio is 0; two empty strings have ratio 1.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		if total == 0 {
			return 1
		}
		return 0
	}

	// Keep the DP row as short as the shorter string.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 2
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return float64(total-prev[len(rb)]) / float64(total)
}

// Compare returns both the distance and the ratio of a and b.
func Compare(a, b string) Comparison {
	return Comparison{Distance: Distance(a, b), Ratio: Ratio(a, b)}
}

// PairwiseRatios compares as[i] with bs[i] for every index.
//
// Returns ErrLengthMismatch if the lists differ in length.
func PairwiseRatios(as, bs []string) ([]Comparison, error) {
	if len(as) != len(bs) {
		return nil, fmt.Errorf("%w: %d vs %d strings", ErrLengthMismatch, len(as), len(bs))
	}

	out := make([]Comparison, len(as))
	for i := range as {
		out[i] = Compare(as[i], bs[i])
	}
	return out, nil
}
