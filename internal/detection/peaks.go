package detection

import "gonum.org/v1/gonum/mat"

// PeakFilter reduces a score surface to its peaks. Cells that are not peaks,
// or whose score does not exceed threshold, are zero in the result.
type PeakFilter interface {
	Filter(surface *mat.Dense, threshold float64) *mat.Dense
}

// FilterPeaks keeps the local maxima of seq that exceed threshold and zeroes
// everything else. The result has the same length as seq.
//
// The walk tracks the previous value and whether the sequence is still
// rising. A value is a peak when the next value is strictly lower while the
// sequence was rising. Flat runs do not end a rise on their own. The last
// element is a peak if the sequence was still rising when it was reached.
//
// Example with threshold 0:
//
//	[3 4 1 5 6 3 3 7 1 2] -> [0 4 0 0 6 0 0 7 0 2]
func FilterPeaks(seq []float64, threshold float64) []float64 {
	out := make([]float64, len(seq))
	if len(seq) == 0 {
		return out
	}

	keep := func(v float64) float64 {
		if v > threshold {
			return v
		}
		return 0
	}

	prev := seq[0]
	ascending := true
	for i := 1; i < len(seq); i++ {
		v := seq[i]
		if v < prev && ascending {
			out[i-1] = keep(prev)
			ascending = false
		} else {
			ascending = v >= prev
		}
		prev = v
	}

	if ascending {
		out[len(seq)-1] = keep(seq[len(seq)-1])
	}
	return out
}

// TwoPassFilter applies FilterPeaks to every row of the surface and then to
// every column of the row-filtered result.
//
// A cell survives only if it is a peak in its row and, after the row pass,
// in its column. This approximates 2-D non-maximum suppression; it is a
// heuristic and does not guarantee a cell is the maximum of its 8-neighbour
// ring.
type TwoPassFilter struct{}

// Filter implements PeakFilter. A nil surface yields nil.
func (TwoPassFilter) Filter(surface *mat.Dense, threshold float64) *mat.Dense {
	if surface == nil {
		return nil
	}

	rowPass := filterRows(surface, threshold)

	var columns mat.Dense
	columns.CloneFrom(rowPass.T())
	colPass := filterRows(&columns, threshold)

	var out mat.Dense
	out.CloneFrom(colPass.T())
	return &out
}

func filterRows(m *mat.Dense, threshold float64) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		out.SetRow(i, FilterPeaks(m.RawRowView(i), threshold))
	}
	return out
}
