// Package grid provides the character grid model used by the radar scanner.
//
// A Grid is an immutable, rectangular block of runes. Radar data (the field
// being searched) and invader patterns (the templates searched for) are both
// represented as grids; a Pattern is a Grid carrying a name.
//
// # Coordinate System
//
// Coordinates follow the usual screen convention:
//   - Origin (0, 0) at the top-left cell
//   - X increases rightward (column index)
//   - Y increases downward (row index)
//
// # Padding
//
// Every Grid carries a padding rune (DefaultPadding unless specified). Enlarge
// uses it to extend the grid by half a pattern on every side, so patterns that
// fall partly outside the field can still be scored and window positions map
// back to field coordinates by subtracting the half pattern size.
//
// # Windows
//
// Window extracts a sub-block. Negative offsets and windows larger than the
// grid are errors; a window that merely runs past the right or bottom edge is
// truncated silently.
//
// # Thread Safety
//
// Grids are never mutated after construction and may be shared freely between
// goroutines. Sub-grids returned by Window and Enlarge may share row storage
// with their source.
package grid
