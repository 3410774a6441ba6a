package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/invader-radar/internal/detection"
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

func parseRadar(t *testing.T) grid.Grid {
	t.Helper()
	g, err := grid.Parse(testRadar, grid.DefaultPadding)
	require.NoError(t, err)
	return g
}

func match(name string, x, y int, score float64) detection.Match {
	return detection.Match{Name: name, FieldX: x, FieldY: y, Width: 6, Height: 4, Score: score}
}

func TestSorted(t *testing.T) {
	in := []detection.Match{
		match("b", 5, 1, 0.9),
		match("a", 5, 1, 0.9),
		match("c", 0, 2, 0.9),
		match("d", 9, 0, 0.9),
	}

	got := Sorted(in)

	names := make([]string, len(got))
	for i, m := range got {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, names)
	assert.Equal(t, "b", in[0].Name, "input must not be reordered")
}

func TestText(t *testing.T) {
	g := parseRadar(t)
	matches := []detection.Match{
		match("invader_2", 9, 1, 1.0),
		match("invader_1", 1, 0, 1.0),
	}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, g, matches))

	want := `Found 2 candidates:
Candidate: invader_1 at 1, 0 with score 1.00
--oo--
-oooo-
--oo--
-o--o-
Candidate: invader_2 at 9, 1 with score 1.00
o----o
-o--o-
-o--o-
--oo--
`
	assert.Equal(t, want, buf.String())
}

func TestText_TruncatesAtEdges(t *testing.T) {
	g := parseRadar(t)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, g, []detection.Match{match("edge", 17, 4, 0.85)}))

	assert.Equal(t, "Found 1 candidates:\nCandidate: edge at 17, 4 with score 0.85\n---\n---\n", buf.String())
}

func TestText_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, parseRadar(t), nil))
	assert.Equal(t, "Found 0 candidates:\n", buf.String())
}

func TestJSON(t *testing.T) {
	g := parseRadar(t)

	var buf bytes.Buffer
	err := JSON(&buf, g, []detection.Match{match("invader_1", 1, 0, 1.0)}, Meta{Source: "data", Threshold: 0.8, Metric: "ratio"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "data", decoded["source"])
	assert.Equal(t, 0.8, decoded["threshold"])
	assert.Equal(t, 1.0, decoded["count"])
	assert.Equal(t, map[string]any{"width": 20.0, "height": 6.0}, decoded["radar"])

	matches := decoded["matches"].([]any)
	require.Len(t, matches, 1)
	m := matches[0].(map[string]any)
	assert.Equal(t, "invader_1", m["name"])
	assert.Equal(t, 1.0, m["x"])
	assert.Equal(t, 0.0, m["y"])
	assert.Equal(t, []any{"--oo--", "-oooo-", "--oo--", "-o--o-"}, m["window"])
}

func TestJSON_EmptyMatchesIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, parseRadar(t), nil, Meta{}))
	assert.Contains(t, buf.String(), `"matches": []`)
}
