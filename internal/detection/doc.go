// Package detection finds invader patterns in radar data.
//
// The package implements a template-matching pipeline over character grids.
// It tolerates noise: a pattern does not need to appear verbatim, it only
// needs to score above a threshold and be a local maximum of the score
// surface.
//
// # Algorithm Overview
//
// For every pattern:
//
//  1. Enlarge: pad the radar grid by half a pattern on every side so patterns
//     partly outside the field still register
//  2. Scan: slide a pattern-sized window over the enlarged grid and score each
//     position with a Scorer (see package similarity)
//  3. Peak filtering: keep only local maxima above the threshold, first along
//     every row, then along every column of the row-filtered surface
//  4. Match building: convert each surviving cell into a Match with field
//     coordinates
//
// Then, across all patterns:
//
//  5. Resolution: candidates that overlap, directly or through a chain of
//     overlaps (same or different patterns), form one cluster; the best
//     member of each cluster is kept
//
// # Coordinate System
//
// Score surfaces are indexed by window offset in the enlarged grid (ScanX,
// ScanY). Field coordinates (FieldX, FieldY) locate the match's top-left
// cell in the original grid:
//   - FieldX = max(0, ScanX - floor(patternWidth/2))
//   - FieldY = max(0, ScanY - floor(patternHeight/2))
//
// # Scores
//
// Scores range from 0.0 to 1.0:
//   - 1.0 = the window is identical to the pattern
//   - ~0.5 = roughly half of each row and column agrees
//   - Lower values are noise
//
// A threshold between 0.8 and 0.9 works well for sparse radar noise.
//
// # Concurrency
//
// Radar data and patterns are immutable, so Engine scans patterns on a pool
// of goroutines. Overlap resolution runs once, after all patterns finish.
//
// # Limitations
//
//   - Patterns are matched at a single scale and orientation
//   - Two-pass peak filtering is a heuristic: a cell can survive while a
//     diagonal neighbour scores higher
//   - Two adjacent invaders whose rectangles touch yield a single match
//   - A chain of overlapping candidates collapses to one match, even when
//     its two ends are far apart
//   - Overlap uses field coordinates, so two windows hanging off the top or
//     left edge are clamped onto the same rows and may merge
package detection
