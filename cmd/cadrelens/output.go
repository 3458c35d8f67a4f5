package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/spektr-org/cadrelens/engine"
	"github.com/spektr-org/cadrelens/helpers"
	"github.com/spektr-org/cadrelens/render"
	"github.com/spektr-org/cadrelens/schema"
)

var formats = []string{"json", "pretty", "text", "csv", "chart-csv", "xlsx"}

func validFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// processOutput is the JSON document printed by process.
type processOutput struct {
	Headline string             `json:"headline"`
	Result   *engine.Result     `json:"result"`
	Chart    *render.ChartModel `json:"chart"`
	Table    *render.TableData  `json:"table"`
	Export   []render.ExportRow `json:"export"`
}

func buildOutput(result *engine.Result, sch schema.Config, hints render.StyleHints) *processOutput {
	title := hints.Title
	if title == "" {
		title = sch.Name
	}
	return &processOutput{
		Headline: render.Headline(sch.Headline, result),
		Result:   result,
		Chart:    render.BuildChart(result.Series, hints),
		Table:    render.BuildTable(title, result.Series, result.Summary),
		Export:   render.ExportRows(result.Filtered),
	}
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeOutput(w io.Writer, format string, out *processOutput) error {
	switch format {
	case "csv":
		return helpers.WriteCSV(w, out.Export)
	case "chart-csv":
		return helpers.WriteSeriesCSV(w, out.Chart)
	case "xlsx":
		return helpers.WriteXLSX(w, out.Export, helpers.DefaultSheet)
	case "text":
		_, err := fmt.Fprintln(w, renderText(out))
		return err
	default:
		return writeJSON(w, out, format)
	}
}

func writeJSON(w io.Writer, v any, format string) error {
	var (
		data []byte
		err  error
	)
	if format == "pretty" {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderText(out *processOutput) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(out.Table.Title))
	b.WriteString("\n")
	b.WriteString(out.Headline)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(describeSelection(out.Result)))
	b.WriteString("\n\n")

	if len(out.Table.Rows) == 0 {
		return b.String()
	}

	b.WriteString(renderTable(out.Table))
	return b.String()
}

func renderTable(td *render.TableData) string {
	headers := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		headers[i] = c.Label
	}

	rows := td.Rows
	if td.Summary != nil {
		summary := make([]string, len(td.Columns))
		summary[0] = td.Summary.Label
		for i, c := range td.Columns[1:] {
			summary[i+1] = td.Summary.Values[c.Key]
		}
		rows = append(append([][]string{}, rows...), summary)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if col < len(td.Columns) && td.Columns[col].Align == "right" {
				style = style.Align(lipgloss.Right)
			}
			if td.Summary != nil && row == len(rows)-1 {
				style = style.Bold(true)
			}
			return style
		})
	return t.Render()
}

func describeSelection(result *engine.Result) string {
	parts := []string{"grouped by " + string(result.GroupBy)}
	for _, d := range result.Selection.Bound() {
		parts = append(parts, fmt.Sprintf("%s=%s", d, result.Selection.Get(d)))
	}
	r := result.Selection.Range
	if r.LastN > 0 {
		parts = append(parts, fmt.Sprintf("last %d years", r.LastN))
	}
	if r.FromYear > 0 {
		parts = append(parts, fmt.Sprintf("from %d", r.FromYear))
	}
	return strings.Join(parts, ", ")
}
