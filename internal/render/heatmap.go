package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// HeatmapOptions controls heatmap drawing.
type HeatmapOptions struct {
	// Scale is the edge length of one surface cell in pixels.
	Scale int

	// Low and High are the hex colors for scores 0 and 1. Scores in between
	// are blended in Lab space.
	Low  string
	High string

	// GridColor draws cell borders when set and Scale > 2.
	GridColor string

	// PeakColor outlines cells that are positive in the peak surface.
	PeakColor string
}

// DefaultHeatmapOptions returns a dark-blue to yellow gradient at 8 pixels
// per cell with red peak outlines.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Scale:     8,
		Low:       "#0b1d51",
		High:      "#ffe14d",
		PeakColor: "#ff2d2d",
	}
}

// HeatmapResult is an encoded heatmap.
type HeatmapResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Scale       int    `json:"scale"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderHeatmap draws surface as an image. peaks may be nil.
func RenderHeatmap(surface, peaks *mat.Dense, opts HeatmapOptions) (*image.NRGBA, error) {
	if surface == nil {
		return nil, fmt.Errorf("empty score surface")
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	low, err := colorful.Hex(opts.Low)
	if err != nil {
		return nil, fmt.Errorf("invalid low color: %w", err)
	}
	high, err := colorful.Hex(opts.High)
	if err != nil {
		return nil, fmt.Errorf("invalid high color: %w", err)
	}

	rows, cols := surface.Dims()
	cells := imaging.New(cols, rows, color.Black)
	for y := 0; y < rows; y++ {
		for x, v := range surface.RawRowView(y) {
			t := math.Max(0, math.Min(1, v))
			cells.Set(x, y, low.BlendLab(high, t).Clamped())
		}
	}

	img := cells
	if opts.Scale > 1 {
		img = imaging.Resize(cells, cols*opts.Scale, rows*opts.Scale, imaging.NearestNeighbor)
	}

	if opts.GridColor != "" && opts.Scale > 2 {
		gridColor, err := colorful.Hex(opts.GridColor)
		if err != nil {
			return nil, fmt.Errorf("invalid grid color: %w", err)
		}
		drawGrid(img, opts.Scale, gridColor)
	}

	if peaks != nil && opts.PeakColor != "" {
		peakColor, err := colorful.Hex(opts.PeakColor)
		if err != nil {
			return nil, fmt.Errorf("invalid peak color: %w", err)
		}
		pr, pc := peaks.Dims()
		for y := 0; y < min(rows, pr); y++ {
			for x := 0; x < min(cols, pc); x++ {
				if peaks.At(y, x) > 0 {
					outline(img, image.Rect(x*opts.Scale, y*opts.Scale, (x+1)*opts.Scale, (y+1)*opts.Scale), peakColor)
				}
			}
		}
	}

	return img, nil
}

// drawGrid draws a line at every cell boundary.
func drawGrid(img *image.NRGBA, spacing int, c color.Color) {
	b := img.Bounds()
	for x := spacing; x < b.Dx(); x += spacing {
		for y := 0; y < b.Dy(); y++ {
			img.Set(x, y, c)
		}
	}
	for y := spacing; y < b.Dy(); y += spacing {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y, c)
		}
	}
}

// outline draws the one-pixel border of r.
func outline(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// SaveHeatmap renders the heatmap and writes it to path. The format follows
// the file extension.
func SaveHeatmap(path string, surface, peaks *mat.Dense, opts HeatmapOptions) error {
	img, err := RenderHeatmap(surface, peaks, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create heatmap directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save heatmap: %w", err)
	}
	return nil
}

// EncodeHeatmap renders the heatmap as a base64 PNG.
func EncodeHeatmap(surface, peaks *mat.Dense, opts HeatmapOptions) (*HeatmapResult, error) {
	img, err := RenderHeatmap(surface, peaks, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &HeatmapResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Scale:       max(opts.Scale, 1),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// HeatmapFileName returns a safe PNG file name for a pattern.
func HeatmapFileName(pattern string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, pattern)
	return name + ".heatmap.png"
}
