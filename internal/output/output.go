// Package output renders dose summaries as JSON, YAML or a styled table.
// Countries and vaccines always appear in sorted order so output is stable
// across runs; the per-country total is listed after the vaccines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/vaxstat/internal/config"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// Renderer writes summaries to w.
type Renderer interface {
	Counts(w io.Writer, counts vaxstat.Counts) error
	Percentages(w io.Writer, pct vaxstat.Percentages) error
}

// New returns the renderer for format (json, yaml or table).
func New(format string) (Renderer, error) {
	switch format {
	case config.OutputJSON:
		return jsonRenderer{}, nil
	case config.OutputYAML:
		return yamlRenderer{}, nil
	case config.OutputTable:
		return tableRenderer{}, nil
	default:
		return nil, config.ValidateOutput(format)
	}
}

type jsonRenderer struct{}

func (jsonRenderer) Counts(w io.Writer, counts vaxstat.Counts) error {
	return writeJSON(w, counts)
}

func (jsonRenderer) Percentages(w io.Writer, pct vaxstat.Percentages) error {
	return writeJSON(w, pct)
}

// encoding/json sorts map keys.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

type yamlRenderer struct{}

func (yamlRenderer) Counts(w io.Writer, counts vaxstat.Counts) error {
	return writeYAML(w, counts)
}

func (yamlRenderer) Percentages(w io.Writer, pct vaxstat.Percentages) error {
	return writeYAML(w, pct)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	totalStyle  = numberStyle.Bold(true)
)

type tableRenderer struct{}

func (tableRenderer) Counts(w io.Writer, counts vaxstat.Counts) error {
	var rows [][]string
	for _, country := range sortedKeys(counts) {
		doses := counts[country]
		for _, vaccine := range vaccineKeys(doses) {
			rows = append(rows, []string{country, vaccine, strconv.FormatInt(doses[vaccine], 10)})
		}
	}
	return writeTable(w, "Doses", rows)
}

func (tableRenderer) Percentages(w io.Writer, pct vaxstat.Percentages) error {
	var rows [][]string
	for _, country := range sortedKeys(pct) {
		shares := pct[country]
		for _, vaccine := range vaccineKeys(shares) {
			rows = append(rows, []string{country, vaccine, strconv.FormatFloat(shares[vaccine], 'f', 2, 64)})
		}
	}
	return writeTable(w, "Percent", rows)
}

func writeTable(w io.Writer, valueHeader string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Country", "Vaccine", valueHeader).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2 && rows[row][1] == vaxstat.TotalDosesKey:
				return totalStyle
			case col == 2:
				return numberStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// vaccineKeys sorts vaccine names and moves the total key to the end.
func vaccineKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	_, hasTotal := m[vaxstat.TotalDosesKey]
	for k := range m {
		if k != vaxstat.TotalDosesKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if hasTotal {
		keys = append(keys, vaxstat.TotalDosesKey)
	}
	return keys
}
