// Package loader reads radar datasets from disk.
//
// A dataset is a directory holding one radar file and any number of invader
// files. Files are classified by name prefix (DefaultRadarPrefix and
// DefaultInvaderPrefix unless configured); everything else is ignored, as are
// subdirectories and dot files. Invaders are named after the file stem, so
// "invader_1.txt" yields the pattern "invader_1".
//
// # File Formats
//
// The format is chosen by extension:
//   - ".png", ".jpg", ".jpeg", ".gif": a bitmap. The image is converted to
//     grayscale, thresholded, and downsampled so that every CellWidth×CellHeight
//     block becomes one character (On when the block is mostly dark)
//   - ".ocr.png", ".ocr.jpg": a screenshot of ASCII radar, read with Tesseract
//     (see package ocr)
//   - anything else: text, one row per whitespace-separated token
//
// # Caching
//
// Cache keeps parsed datasets in memory, keyed by directory. Long-running
// callers (the MCP server, the watch loop) evict a directory when its files
// change.
package loader
