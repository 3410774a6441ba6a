package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/grid"
)

// Report is the JSON form of a detection run.
type Report struct {
	// Source is where the radar data came from, usually a directory.
	Source string `json:"source,omitempty"`

	Radar     RadarInfo `json:"radar"`
	Threshold float64   `json:"threshold"`
	Metric    string    `json:"metric,omitempty"`
	Count     int       `json:"count"`

	Matches []MatchReport `json:"matches"`
}

// RadarInfo describes the searched grid.
type RadarInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MatchReport is a match with the radar cells it covers.
type MatchReport struct {
	detection.Match
	Window []string `json:"window"`
}

// Meta carries run settings that are not part of the result itself.
type Meta struct {
	Source    string
	Threshold float64
	Metric    string
}

// NewReport builds a report with matches in Sorted order.
func NewReport(g grid.Grid, matches []detection.Match, meta Meta) (*Report, error) {
	r := &Report{
		Source:    meta.Source,
		Radar:     RadarInfo{Width: g.Width(), Height: g.Height()},
		Threshold: meta.Threshold,
		Metric:    meta.Metric,
		Count:     len(matches),
		Matches:   make([]MatchReport, 0, len(matches)),
	}
	for _, m := range Sorted(matches) {
		rows, err := Excerpt(g, m)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", m, err)
		}
		r.Matches = append(r.Matches, MatchReport{Match: m, Window: rows})
	}
	return r, nil
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, g grid.Grid, matches []detection.Match, meta Meta) error {
	r, err := NewReport(g, matches, meta)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
