// Package ocr turns screenshots of ASCII radar data into character grids.
//
// Recognition is done by the Tesseract engine through gosseract/v2. The
// recognizer is restricted to a small alphabet (the characters radar data
// is drawn with), which makes it far more reliable than free-text OCR.
//
// # Prerequisites
//
// Tesseract and its language data must be installed, and the binary must be
// built with CGO enabled:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng libtesseract-dev
//   - macOS: brew install tesseract
//
// Without CGO, ReadGrid returns ErrUnavailable.
//
// # Output
//
// Every non-blank line of recognized text becomes a grid row, with whitespace
// removed. Rows must come out the same length; a ragged result is reported
// as grid.ErrValidation so callers can tell a bad screenshot from a missing
// file.
package ocr
