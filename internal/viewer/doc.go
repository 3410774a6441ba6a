// Package viewer shows detection results in the terminal.
//
// The radar grid is drawn below a one-line status bar. Cells covered by a
// match are highlighted, and the selected match is drawn in reverse video.
//
// Keys:
//   - n, Tab, Right: next match
//   - p, Shift-Tab, Left: previous match
//   - h, j, k, l: scroll when the grid is larger than the terminal
//   - q, Esc, Ctrl-C: quit
package viewer
