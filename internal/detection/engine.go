package detection

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/invader-radar/internal/grid"
	"github.com/ironsheep/invader-radar/internal/similarity"
)

// DefaultThreshold is the peak threshold used when none is configured.
const DefaultThreshold = 0.8

// Engine runs the detection pipeline: scan, peak filtering, match building
// and overlap resolution.
//
// The scoring and peak strategies are interfaces so alternatives can be
// swapped in without touching the pipeline. An Engine is safe for concurrent
// use once built; Run never mutates it.
type Engine struct {
	scorer    Scorer
	peaks     PeakFilter
	threshold float64
	bounds    ScanBounds
	workers   int
	logger    *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithScorer sets the window scorer. Default: ratio-based WindowScorer.
func WithScorer(s Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithPeakFilter sets the peak filter. Default: TwoPassFilter.
func WithPeakFilter(f PeakFilter) Option {
	return func(e *Engine) {
		if f != nil {
			e.peaks = f
		}
	}
}

// WithThreshold sets the peak threshold.
func WithThreshold(t float64) Option {
	return func(e *Engine) { e.threshold = t }
}

// WithBounds sets the scan bounds. Default: InclusiveBounds.
func WithBounds(b ScanBounds) Option {
	return func(e *Engine) { e.bounds = b }
}

// WithWorkers sets how many patterns are scanned concurrently. Values below
// one select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets the logger used for per-pattern debug lines.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine with the given options applied over defaults.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		scorer:    similarity.NewWindowScorer(nil),
		peaks:     TwoPassFilter{},
		threshold: DefaultThreshold,
		bounds:    InclusiveBounds,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	return e
}

// Threshold returns the configured peak threshold.
func (e *Engine) Threshold() float64 { return e.threshold }

// Surface is the score surface of one pattern.
type Surface struct {
	Name   string
	Scores *mat.Dense

	// Peaks is Scores after the engine's peak filter; its positive cells
	// are the pattern's candidates.
	Peaks *mat.Dense
}

// Result holds the output of a full detection run.
type Result struct {
	// Matches is the resolved, overlap-free match set.
	Matches []Match

	// Candidates are all peaks of all patterns before overlap resolution,
	// in pattern order.
	Candidates []Match

	// Surfaces are the raw and peak-filtered score surfaces, in pattern
	// order. Scores and Peaks are nil for a pattern with no scan position.
	Surfaces []Surface
}

type patternResult struct {
	candidates []Match
	surface    *mat.Dense
	peaks      *mat.Dense
	err        error
}

// Run detects patterns in g and returns the resolved match set.
func (e *Engine) Run(g grid.Grid, patterns []grid.Pattern) ([]Match, error) {
	res, err := e.Analyze(g, patterns)
	if err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// Analyze runs the full pipeline and keeps the intermediate candidates and
// score surfaces.
//
// Patterns are scanned concurrently; their candidates are concatenated in
// pattern order and resolved once, so the result does not depend on the
// worker count.
func (e *Engine) Analyze(g grid.Grid, patterns []grid.Pattern) (*Result, error) {
	if err := validateInputs(g, patterns); err != nil {
		return nil, err
	}

	results := make([]patternResult, len(patterns))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(e.workers, len(patterns)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.analyzePattern(g, patterns[i])
			}
		}()
	}
	for i := range patterns {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res := &Result{Surfaces: make([]Surface, len(patterns))}
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("pattern %q: %w", patterns[i].Name, r.err)
		}
		res.Candidates = append(res.Candidates, r.candidates...)
		res.Surfaces[i] = Surface{Name: patterns[i].Name, Scores: r.surface, Peaks: r.peaks}
	}

	res.Matches = Resolve(res.Candidates)
	e.logger.Printf("resolved %d candidates to %d matches", len(res.Candidates), len(res.Matches))
	return res, nil
}

func (e *Engine) analyzePattern(g grid.Grid, p grid.Pattern) patternResult {
	surface, err := Scan(g, p, e.scorer, e.bounds)
	if err != nil {
		return patternResult{err: err}
	}
	var peaks *mat.Dense
	if surface != nil {
		peaks = e.peaks.Filter(surface, e.threshold)
	}
	candidates := BuildMatches(peaks, p)
	e.logger.Printf("pattern %s: %d candidates above %.2f", p.Name, len(candidates), e.threshold)
	return patternResult{candidates: candidates, surface: surface, peaks: peaks}
}

func validateInputs(g grid.Grid, patterns []grid.Pattern) error {
	if g.Empty() {
		return fmt.Errorf("%w: radar grid is empty", grid.ErrValidation)
	}
	for _, p := range patterns {
		if p.Empty() {
			return fmt.Errorf("%w: pattern %q is empty", grid.ErrValidation, p.Name)
		}
		if !p.Fits(g) {
			return fmt.Errorf("%w: pattern %q (%dx%d) larger than radar grid (%dx%d)",
				grid.ErrValidation, p.Name, p.Width(), p.Height(), g.Width(), g.Height())
		}
	}
	return nil
}

// Detect runs the default pipeline over g with the given threshold.
func Detect(g grid.Grid, patterns []grid.Pattern, threshold float64) ([]Match, error) {
	return NewEngine(WithThreshold(threshold)).Run(g, patterns)
}
