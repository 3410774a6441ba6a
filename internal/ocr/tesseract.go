//go:build cgo

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/invader-radar/internal/grid"
)

// ReadGrid recognizes the ASCII radar drawn in the image at path and
// returns it as a grid padded with padding.
func ReadGrid(path string, padding rune, opts Options) (grid.Grid, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(opts.language()); err != nil {
		return grid.Grid{}, fmt.Errorf("failed to set language: %w", err)
	}
	if opts.Alphabet != "" {
		if err := client.SetWhitelist(opts.Alphabet); err != nil {
			return grid.Grid{}, fmt.Errorf("failed to set alphabet: %w", err)
		}
	}
	// The radar is one uniform block of text, not a page layout.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return grid.Grid{}, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := client.SetImage(path); err != nil {
		return grid.Grid{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return grid.Grid{}, fmt.Errorf("OCR failed: %w", err)
	}

	return toGrid(text, padding)
}

// Version reports the linked Tesseract version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
