// Package render writes a brew schedule in the supported output formats.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/metalagman/pourover/internal/brew"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPretty   Format = "pretty"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatPretty}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Report is everything needed to render one brew.
type Report struct {
	Plan   brew.Plan
	Timing brew.Timing
	Steps  []brew.Step
}

// Summary returns the one-line brew summary.
func (r Report) Summary() string {
	return brew.Summarize(r.Plan, r.Timing.PourTime)
}

const stepFormat = "%8s %8s\n"

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatText:
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(r)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(r)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return err
	case FormatPretty:
		out, err := Pretty(r)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, r Report) error {
	var b strings.Builder
	b.WriteString(r.Summary())
	b.WriteByte('\n')
	fmt.Fprintf(&b, stepFormat, "TIME", "GRAMS")
	for _, step := range r.Steps {
		fmt.Fprintf(&b, stepFormat, brew.FormatTime(step.At), strconv.Itoa(step.Water))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders r as a markdown document with a schedule table.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", r.Summary())
	b.WriteString("| TIME | GRAMS |\n")
	b.WriteString("| ---: | ---: |\n")
	for _, step := range r.Steps {
		fmt.Fprintf(&b, "| %s | %d |\n", brew.FormatTime(step.At), step.Water)
	}
	return b.String()
}

// Pretty renders the markdown form of r for the terminal.
func Pretty(r Report) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(Markdown(r))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

type document struct {
	Summary   string        `json:"summary"    yaml:"summary"`
	Water     int           `json:"water"      yaml:"water"`
	Coffee    int           `json:"coffee"     yaml:"coffee"`
	Ratio     float64       `json:"ratio"      yaml:"ratio"`
	PourTime  string        `json:"pour_time"  yaml:"pour_time"`
	BloomTime int           `json:"bloom_time" yaml:"bloom_time"`
	Increment int           `json:"increment"  yaml:"increment"`
	Steps     []documentRow `json:"steps"      yaml:"steps"`
}

type documentRow struct {
	Time    string `json:"time"    yaml:"time"`
	Seconds int    `json:"seconds" yaml:"seconds"`
	Grams   int    `json:"grams"   yaml:"grams"`
}

func newDocument(r Report) document {
	rows := make([]documentRow, 0, len(r.Steps))
	for _, step := range r.Steps {
		rows = append(rows, documentRow{Time: brew.FormatTime(step.At), Seconds: step.At, Grams: step.Water})
	}
	return document{
		Summary:   r.Summary(),
		Water:     r.Plan.Water,
		Coffee:    r.Plan.Coffee,
		Ratio:     math.Round(r.Plan.Ratio()*1000) / 1000,
		PourTime:  brew.FormatTime(r.Timing.PourTime),
		BloomTime: r.Timing.BloomTime,
		Increment: r.Timing.Increment,
		Steps:     rows,
	}
}
