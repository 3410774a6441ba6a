package loader

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/invader-radar/internal/grid"
)

// BitmapOptions controls how an image is turned into characters.
type BitmapOptions struct {
	// CellWidth, CellHeight are the pixel dimensions of one character cell.
	CellWidth  int
	CellHeight int

	// Level is the gray level separating dark pixels (below) from light ones.
	Level uint8

	// On and Off are the characters for dark and light cells.
	On  rune
	Off rune
}

// DefaultBitmapOptions maps one pixel to one cell, dark pixels to 'o' and
// light pixels to '-'.
func DefaultBitmapOptions() BitmapOptions {
	return BitmapOptions{CellWidth: 1, CellHeight: 1, Level: 128, On: 'o', Off: '-'}
}

func (o BitmapOptions) withDefaults() BitmapOptions {
	d := DefaultBitmapOptions()
	if o.CellWidth < 1 {
		o.CellWidth = d.CellWidth
	}
	if o.CellHeight < 1 {
		o.CellHeight = d.CellHeight
	}
	if o.Level == 0 {
		o.Level = d.Level
	}
	if o.On == 0 {
		o.On = d.On
	}
	if o.Off == 0 {
		o.Off = d.Off
	}
	return o
}

// ReadBitmap converts img into a grid.
//
// The image is binarized at opts.Level, cropped to a whole number of cells
// and box-filtered down to one pixel per cell; a cell is On when more than
// half of its pixels are dark.
func ReadBitmap(img image.Image, opts BitmapOptions, padding rune) (grid.Grid, error) {
	opts = opts.withDefaults()

	bin := segment.Threshold(effect.Grayscale(img), opts.Level)

	b := bin.Bounds()
	cols, rows := b.Dx()/opts.CellWidth, b.Dy()/opts.CellHeight
	if cols == 0 || rows == 0 {
		return grid.Grid{}, fmt.Errorf("%w: %dx%d image is smaller than one %dx%d cell",
			grid.ErrValidation, b.Dx(), b.Dy(), opts.CellWidth, opts.CellHeight)
	}

	var cells image.Image = bin
	if opts.CellWidth > 1 || opts.CellHeight > 1 {
		whole := image.Rect(b.Min.X, b.Min.Y, b.Min.X+cols*opts.CellWidth, b.Min.Y+rows*opts.CellHeight)
		cells = imaging.Resize(imaging.Crop(bin, whole), cols, rows, imaging.Box)
	}

	cb := cells.Bounds()
	lines := make([]string, rows)
	var sb strings.Builder
	for y := 0; y < rows; y++ {
		sb.Reset()
		for x := 0; x < cols; x++ {
			gray := color.GrayModel.Convert(cells.At(cb.Min.X+x, cb.Min.Y+y)).(color.Gray)
			if gray.Y < 128 {
				sb.WriteRune(opts.On)
			} else {
				sb.WriteRune(opts.Off)
			}
		}
		lines[y] = sb.String()
	}

	return grid.New(lines, padding)
}
