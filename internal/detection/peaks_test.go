package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFilterPeaks_ZeroThreshold(t *testing.T) {
	result := FilterPeaks([]float64{3, 4, 1, 5, 6, 3, 3, 7, 1, 2}, 0)
	assert.Equal(t, []float64{0, 4, 0, 0, 6, 0, 0, 7, 0, 2}, result)
}

func TestFilterPeaks_NonZeroThreshold(t *testing.T) {
	result := FilterPeaks([]float64{3, 4, 1, 5, 6, 3, 3, 7, 1, 2}, 4)
	assert.Equal(t, []float64{0, 0, 0, 0, 6, 0, 0, 7, 0, 0}, result)
}

func TestFilterPeaks_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		seq       []float64
		threshold float64
		want      []float64
	}{
		{"empty", []float64{}, 0, []float64{}},
		{"single above", []float64{0.9}, 0.5, []float64{0.9}},
		{"single below", []float64{0.3}, 0.5, []float64{0}},
		{"strictly rising", []float64{1, 2, 3}, 0, []float64{0, 0, 3}},
		{"strictly falling", []float64{3, 2, 1}, 0, []float64{3, 0, 0}},
		{"flat run then fall", []float64{1, 5, 5, 2}, 0, []float64{0, 0, 5, 0}},
		{"flat to end", []float64{2, 2, 2}, 0, []float64{0, 0, 2}},
		{"threshold is exclusive", []float64{1, 4, 1}, 4, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPeaks(tt.seq, tt.threshold)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.seq))
		})
	}
}

func TestFilterPeaks_DoesNotModifyInput(t *testing.T) {
	seq := []float64{1, 3, 2}
	FilterPeaks(seq, 0)
	assert.Equal(t, []float64{1, 3, 2}, seq)
}

func TestTwoPassFilter(t *testing.T) {
	surface := mat.NewDense(3, 3, []float64{
		0.1, 0.2, 0.1,
		0.2, 0.9, 0.3,
		0.1, 0.4, 0.2,
	})

	peaks := TwoPassFilter{}.Filter(surface, 0.5)

	require.NotNil(t, peaks)
	r, c := peaks.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			if x == 1 && y == 1 {
				assert.Equal(t, 0.9, peaks.At(y, x))
				continue
			}
			assert.Zero(t, peaks.At(y, x), "cell (%d,%d)", x, y)
		}
	}
}

func TestTwoPassFilter_ColumnPassOnlyRemoves(t *testing.T) {
	// Row peaks at (1,0) and (1,1); the column pass keeps only the larger.
	surface := mat.NewDense(2, 3, []float64{
		0.1, 0.6, 0.1,
		0.1, 0.8, 0.1,
	})

	peaks := TwoPassFilter{}.Filter(surface, 0)

	assert.Zero(t, peaks.At(0, 1))
	assert.Equal(t, 0.8, peaks.At(1, 1))
	assert.Equal(t, 0.8, mat.Sum(peaks))
}

func TestTwoPassFilter_Nil(t *testing.T) {
	assert.Nil(t, TwoPassFilter{}.Filter(nil, 0))
}
