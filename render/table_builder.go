package render

import (
	"fmt"

	"github.com/spektr-org/cadrelens/engine"
)

// ============================================================================
// TABLE BUILDER — grouped summary table + flat export rows
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// BuildTable produces one row per group: key, total, record count, share of
// the grand total.
func BuildTable(title string, series engine.AggregatedSeries, stats engine.SummaryStats) *TableData {
	groupLabel := LabelForDimension(series.Key)
	if groupLabel == "" {
		groupLabel = "Group"
	}

	table := &TableData{
		Title: title,
		Columns: []Column{
			{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
			{Key: "total", Label: "Total", Type: "number", Align: "right"},
			{Key: "count", Label: "Records", Type: "number", Align: "center"},
			{Key: "share", Label: "Share", Type: "percent", Align: "right"},
		},
		Rows: make([][]string, 0, len(series.Groups)),
	}

	var totalCount int
	for _, g := range series.Groups {
		table.Rows = append(table.Rows, []string{
			g.Key,
			FormatInt(g.Total),
			fmt.Sprintf("%d", g.Count),
			FormatPercent(engine.Rate(g.Total, stats.GrandTotal)),
		})
		totalCount += g.Count
	}

	table.Summary = &Summary{
		Label: "Total",
		Values: map[string]string{
			"total": FormatInt(stats.GrandTotal),
			"count": fmt.Sprintf("%d", totalCount),
			"share": FormatPercent(engine.Rate(series.Sum(), stats.GrandTotal)),
		},
	}
	return table
}

// ============================================================================
// EXPORT ROWS — flat records for CSV/XLSX exporters
// ============================================================================

// ExportHeaders are the stable export field names, in column order.
var ExportHeaders = []string{"period", "category", "label", "total"}

// ExportRow is one flat export record.
type ExportRow struct {
	Period   string `json:"period"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Total    int    `json:"total"`
}

// Values returns the row's fields in ExportHeaders order.
func (r ExportRow) Values() []string {
	return []string{r.Period, r.Category, r.Label, fmt.Sprintf("%d", r.Total)}
}

// ExportRows maps filtered results to export rows, keeping their order.
// Labels are never truncated here.
func ExportRows(filtered []engine.FilteredResult) []ExportRow {
	rows := make([]ExportRow, 0, len(filtered))
	for _, f := range filtered {
		rows = append(rows, ExportRow{
			Period:   f.Period,
			Category: f.Category,
			Label:    f.SubCategory,
			Total:    f.Total,
		})
	}
	return rows
}
