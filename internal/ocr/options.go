package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/invader-radar/internal/grid"
)

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("ocr: tesseract support not compiled in")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// DefaultAlphabet is the character set radar screenshots are drawn with.
const DefaultAlphabet = "o-"

// Options controls recognition.
type Options struct {
	// Language is a Tesseract language code such as "eng".
	Language string `yaml:"language" json:"language"`

	// Alphabet restricts recognition to these characters. Empty means no
	// restriction.
	Alphabet string `yaml:"alphabet" json:"alphabet"`
}

// DefaultOptions returns the options used for radar screenshots.
func DefaultOptions() Options {
	return Options{Language: DefaultLanguage, Alphabet: DefaultAlphabet}
}

func (o Options) language() string {
	if o.Language == "" {
		return DefaultLanguage
	}
	return o.Language
}

// toGrid converts recognized text into a grid. Blank lines are dropped and
// whitespace inside a line is removed, since Tesseract tends to insert
// spaces between repeated glyphs.
func toGrid(text string, padding rune) (grid.Grid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		row := strings.Join(strings.Fields(line), "")
		if row != "" {
			rows = append(rows, row)
		}
	}
	g, err := grid.New(rows, padding)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("recognized text is not a grid: %w", err)
	}
	return g, nil
}
