package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/invader-radar/internal/grid"
	"github.com/ironsheep/invader-radar/internal/ocr"
)

const (
	// DefaultRadarPrefix marks the radar data file.
	DefaultRadarPrefix = "radar_data"

	// DefaultInvaderPrefix marks invader pattern files.
	DefaultInvaderPrefix = "invader"
)

var (
	// ErrNoRadarData is returned when a directory has no radar file.
	ErrNoRadarData = errors.New("no radar data file found")

	// ErrMultipleRadarData is returned when more than one file carries the
	// radar prefix.
	ErrMultipleRadarData = errors.New("more than one radar data file")

	// ErrNoPatterns is returned when a directory has no invader files.
	ErrNoPatterns = errors.New("no invader files found")

	// ErrDuplicatePattern is returned when two invader files share a stem.
	ErrDuplicatePattern = errors.New("duplicate invader name")
)

// Options controls how a directory is read.
type Options struct {
	RadarPrefix   string
	InvaderPrefix string

	// Padding is the padding rune given to every grid.
	Padding rune

	Bitmap BitmapOptions
	OCR    ocr.Options
}

// DefaultOptions returns the options for the standard dataset layout.
func DefaultOptions() Options {
	return Options{
		RadarPrefix:   DefaultRadarPrefix,
		InvaderPrefix: DefaultInvaderPrefix,
		Padding:       grid.DefaultPadding,
		Bitmap:        DefaultBitmapOptions(),
		OCR:           ocr.DefaultOptions(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RadarPrefix == "" {
		o.RadarPrefix = d.RadarPrefix
	}
	if o.InvaderPrefix == "" {
		o.InvaderPrefix = d.InvaderPrefix
	}
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	o.Bitmap = o.Bitmap.withDefaults()
	return o
}

// Dataset is a parsed radar directory. Callers must not modify it; cached
// datasets are shared.
type Dataset struct {
	Dir       string
	RadarFile string
	Radar     grid.Grid

	// Patterns are sorted by name.
	Patterns []grid.Pattern
}

// Pattern looks up a pattern by name.
func (d *Dataset) Pattern(name string) (grid.Pattern, bool) {
	for _, p := range d.Patterns {
		if p.Name == name {
			return p, true
		}
	}
	return grid.Pattern{}, false
}

// LoadDir reads the dataset in dir.
func LoadDir(dir string, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read radar directory: %w", err)
	}

	ds := &Dataset{Dir: dir}
	seen := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		switch {
		case strings.HasPrefix(name, opts.InvaderPrefix):
			stem := Stem(name)
			if prev, ok := seen[stem]; ok {
				return nil, fmt.Errorf("%w %q: %s and %s", ErrDuplicatePattern, stem, prev, name)
			}
			seen[stem] = name

			g, err := ReadGridFile(path, opts)
			if err != nil {
				return nil, fmt.Errorf("invader %s: %w", name, err)
			}
			ds.Patterns = append(ds.Patterns, grid.Pattern{Name: stem, Grid: g})

		case strings.HasPrefix(name, opts.RadarPrefix):
			if ds.RadarFile != "" {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleRadarData, filepath.Base(ds.RadarFile), name)
			}
			g, err := ReadGridFile(path, opts)
			if err != nil {
				return nil, fmt.Errorf("radar data %s: %w", name, err)
			}
			ds.RadarFile = path
			ds.Radar = g
		}
	}

	if ds.RadarFile == "" {
		return nil, fmt.Errorf("%w in %s", ErrNoRadarData, dir)
	}
	if len(ds.Patterns) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPatterns, dir)
	}

	sort.Slice(ds.Patterns, func(i, j int) bool {
		return ds.Patterns[i].Name < ds.Patterns[j].Name
	})
	return ds, nil
}

// Kind is the on-disk representation of a grid file.
type Kind int

const (
	KindText Kind = iota
	KindBitmap
	KindOCR
)

// KindOf classifies a file by extension.
func KindOf(name string) Kind {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
		if strings.HasSuffix(strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))), ".ocr") {
			return KindOCR
		}
		return KindBitmap
	}
	return KindText
}

// Stem returns name without its extension, and without the ".ocr" marker
// of screenshot files.
func Stem(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if KindOf(name) == KindOCR {
		stem = stem[:len(stem)-len(".ocr")]
	}
	return stem
}

// ReadGridFile reads one grid file in whichever format its name implies.
func ReadGridFile(path string, opts Options) (grid.Grid, error) {
	opts = opts.withDefaults()

	switch KindOf(path) {
	case KindOCR:
		return ocr.ReadGrid(path, opts.Padding, opts.OCR)

	case KindBitmap:
		img, err := imaging.Open(path)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("failed to open image: %w", err)
		}
		return ReadBitmap(img, opts.Bitmap, opts.Padding)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("failed to read file: %w", err)
	}
	return grid.Parse(string(data), opts.Padding)
}
