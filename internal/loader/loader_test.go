package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/invader-radar/internal/grid"
)

const testRadar = `
---oo---------------
--oooo---o----o-----
---oo-----o--o------
--o--o----o--o------
-----------oo-------
--------------------
`

const testInvader1 = `
--oo--
-oooo-
--oo--
-o--o-
`

const testInvader2 = `
o----o
-o--o-
-o--o-
--oo--
`

// writeDataset creates a dataset directory from name → content pairs.
func writeDataset(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"radar_data.txt": testRadar,
		"invader_2.txt":  testInvader2,
		"invader_1.txt":  testInvader1,
		"README.md":      "not radar data",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "invader_dir"), 0o755))

	ds, err := LoadDir(dir, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, dir, ds.Dir)
	assert.Equal(t, filepath.Join(dir, "radar_data.txt"), ds.RadarFile)
	assert.Equal(t, 20, ds.Radar.Width())
	assert.Equal(t, 6, ds.Radar.Height())

	require.Len(t, ds.Patterns, 2)
	assert.Equal(t, "invader_1", ds.Patterns[0].Name)
	assert.Equal(t, "invader_2", ds.Patterns[1].Name)
	assert.Equal(t, "o----o", ds.Patterns[1].Row(0))

	p, ok := ds.Pattern("invader_2")
	assert.True(t, ok)
	assert.Equal(t, 4, p.Height())
	_, ok = ds.Pattern("invader_9")
	assert.False(t, ok)
}

func TestLoadDir_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "missing radar data",
			files:   map[string]string{"invader_1.txt": testInvader1},
			wantErr: ErrNoRadarData,
		},
		{
			name:    "no invaders",
			files:   map[string]string{"radar_data.txt": testRadar},
			wantErr: ErrNoPatterns,
		},
		{
			name: "two radar files",
			files: map[string]string{
				"radar_data.txt":   testRadar,
				"radar_data_2.txt": testRadar,
				"invader_1.txt":    testInvader1,
			},
			wantErr: ErrMultipleRadarData,
		},
		{
			name: "duplicate invader stem",
			files: map[string]string{
				"radar_data.txt": testRadar,
				"invader_1.txt":  testInvader1,
				"invader_1.dat":  testInvader1,
			},
			wantErr: ErrDuplicatePattern,
		},
		{
			name: "ragged invader",
			files: map[string]string{
				"radar_data.txt": testRadar,
				"invader_1.txt":  "--oo--\n-oo-\n",
			},
			wantErr: grid.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDir(writeDataset(t, tt.files), DefaultOptions())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDir_NonExistentDir(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"), DefaultOptions())
	assert.Error(t, err)
}

func TestLoadDir_CustomPrefixes(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"field.txt":    testRadar,
		"target_a.txt": testInvader1,
		// Default names are ignored once prefixes change.
		"radar_data.txt": "x",
	})

	opts := DefaultOptions()
	opts.RadarPrefix = "field"
	opts.InvaderPrefix = "target"

	ds, err := LoadDir(dir, opts)
	require.NoError(t, err)
	require.Len(t, ds.Patterns, 1)
	assert.Equal(t, "target_a", ds.Patterns[0].Name)
	assert.Equal(t, 20, ds.Radar.Width())
}

func TestKindOfAndStem(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		stem string
	}{
		{"invader_1.txt", KindText, "invader_1"},
		{"invader_1", KindText, "invader_1"},
		{"invader_1.png", KindBitmap, "invader_1"},
		{"radar_data.JPG", KindBitmap, "radar_data"},
		{"invader_1.gif", KindBitmap, "invader_1"},
		{"radar_data.ocr.png", KindOCR, "radar_data"},
		{"invader_2.OCR.jpeg", KindOCR, "invader_2"},
		{"invader_3.ocr.txt", KindText, "invader_3.ocr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.name))
			assert.Equal(t, tt.stem, Stem(tt.name))
		})
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, DefaultRadarPrefix, opts.RadarPrefix)
	assert.Equal(t, DefaultInvaderPrefix, opts.InvaderPrefix)
	assert.Equal(t, grid.DefaultPadding, opts.Padding)
	assert.Equal(t, DefaultBitmapOptions(), opts.Bitmap)
}
