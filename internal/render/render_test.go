package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/metalagman/pourover/internal/brew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testReport(t *testing.T) Report {
	t.Helper()

	timing := brew.Timing{PourTime: 90, BloomTime: 30, Increment: 20}
	steps, err := brew.GenerateSchedule(brew.DefaultPlan, timing)
	require.NoError(t, err)
	return Report{Plan: brew.DefaultPlan, Timing: timing, Steps: steps}
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Write(&out, FormatText, testReport(t)))

	want := "water: 210g, coffee: 15g, ratio: 0.071, time: 1:30\n" +
		"    TIME    GRAMS\n" +
		"    0:00       30\n" +
		"    0:30       60\n" +
		"    0:50      110\n" +
		"    1:10      160\n" +
		"    1:30      210\n"
	assert.Equal(t, want, out.String())
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Write(&out, FormatJSON, testReport(t)))

	var doc document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 210, doc.Water)
	assert.Equal(t, 15, doc.Coffee)
	assert.InDelta(t, 0.071, doc.Ratio, 1e-9)
	assert.Equal(t, "1:30", doc.PourTime)
	require.Len(t, doc.Steps, 5)
	assert.Equal(t, documentRow{Time: "0:50", Seconds: 50, Grams: 110}, doc.Steps[2])
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Write(&out, FormatYAML, testReport(t)))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "water: 210g, coffee: 15g, ratio: 0.071, time: 1:30", doc["summary"])
	assert.Equal(t, 210, doc["water"])
	assert.Len(t, doc["steps"], 5)
}

func TestWrite_Markdown(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Write(&out, FormatMarkdown, testReport(t)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "**water: 210g, coffee: 15g, ratio: 0.071, time: 1:30**", lines[0])
	assert.Equal(t, "| TIME | GRAMS |", lines[2])
	assert.Equal(t, "| 1:30 | 210 |", lines[len(lines)-1])
}

func TestWrite_Pretty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Write(&out, FormatPretty, testReport(t)))
	assert.Contains(t, out.String(), "GRAMS")
	assert.Contains(t, out.String(), "210")
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, Format("html"), testReport(t))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("csv")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
