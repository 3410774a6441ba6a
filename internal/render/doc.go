// Package render presents detection results.
//
// Text writes the classic console report, JSON a machine-readable one, and
// the heatmap functions draw a pattern's score surface as an image so a
// threshold can be picked by eye.
package render
