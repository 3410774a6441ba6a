package similarity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/invader-radar/internal/grid"
)

// ErrUnknownMetric is returned by MetricByName for unsupported names.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric scores the similarity of two strings in [0, 1].
type Metric interface {
	Similarity(a, b string) float64
}

// RatioMetric scores strings with Ratio.
type RatioMetric struct{}

// Similarity implements Metric.
func (RatioMetric) Similarity(a, b string) float64 { return Ratio(a, b) }

// String implements fmt.Stringer.
func (RatioMetric) String() string { return "ratio" }

// JaroWinklerMetric scores strings with the Jaro-Winkler similarity.
type JaroWinklerMetric struct {
	// LongTolerance enables the adjustment for long strings.
	LongTolerance bool
}

// Similarity implements Metric. Empty strings follow the same rule as Ratio.
func (m JaroWinklerMetric) Similarity(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1
		}
		return 0
	}
	return matchr.JaroWinkler(a, b, m.LongTolerance)
}

// String implements fmt.Stringer.
func (JaroWinklerMetric) String() string { return "jaro-winkler" }

// MetricNames lists the names accepted by MetricByName.
var MetricNames = []string{"ratio", "jaro-winkler"}

// MetricByName returns the metric registered under name. An empty name
// selects the ratio metric.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ratio", "levenshtein":
		return RatioMetric{}, nil
	case "jaro-winkler", "jarowinkler", "jw":
		return JaroWinklerMetric{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use one of %s)", ErrUnknownMetric, name, strings.Join(MetricNames, ", "))
	}
}

// WindowScorer aggregates row-wise and column-wise similarity between a
// window and a pattern of the same shape.
type WindowScorer struct {
	Metric Metric
}

// NewWindowScorer returns a scorer using m, or RatioMetric if m is nil.
func NewWindowScorer(m Metric) *WindowScorer {
	if m == nil {
		m = RatioMetric{}
	}
	return &WindowScorer{Metric: m}
}

// Score returns the mean of the average row similarity and the average
// column similarity of window against pattern.
//
// Returns ErrLengthMismatch if the blocks do not have the same shape.
func (s *WindowScorer) Score(window, pattern grid.Grid) (float64, error) {
	rowScore, err := s.meanSimilarity(window.Rows(), pattern.Rows())
	if err != nil {
		return 0, fmt.Errorf("rows: %w", err)
	}
	colScore, err := s.meanSimilarity(window.Columns(), pattern.Columns())
	if err != nil {
		return 0, fmt.Errorf("columns: %w", err)
	}
	return (rowScore + colScore) / 2, nil
}

func (s *WindowScorer) meanSimilarity(as, bs []string) (float64, error) {
	if len(as) != len(bs) {
		return 0, fmt.Errorf("%w: %d vs %d strings", ErrLengthMismatch, len(as), len(bs))
	}
	if len(as) == 0 {
		return 0, nil
	}

	values := make([]float64, len(as))
	if _, ok := s.metric().(RatioMetric); ok {
		comparisons, err := PairwiseRatios(as, bs)
		if err != nil {
			return 0, err
		}
		for i, c := range comparisons {
			values[i] = c.Ratio
		}
	} else {
		for i := range as {
			values[i] = s.metric().Similarity(as[i], bs[i])
		}
	}
	return stat.Mean(values, nil), nil
}

func (s *WindowScorer) metric() Metric {
	if s.Metric == nil {
		return RatioMetric{}
	}
	return s.Metric
}
