//go:build !cgo

package ocr

import "github.com/ironsheep/invader-radar/internal/grid"

// ReadGrid always fails without CGO.
func ReadGrid(path string, padding rune, opts Options) (grid.Grid, error) {
	return grid.Grid{}, ErrUnavailable
}

// Version reports that Tesseract is unavailable.
func Version() string { return "unavailable" }
