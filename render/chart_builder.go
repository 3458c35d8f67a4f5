package render

import (
	"github.com/spektr-org/cadrelens/engine"
)

// ============================================================================
// CHART BUILDER — Produces ChartModel from an AggregatedSeries
// ============================================================================
// Output matches the widget contract { labels, series, colors }.
// Labels are truncated copies; Keys keeps the untruncated aggregation keys so
// a click on a bar can be mapped back to a filter value.
// ============================================================================

// DefaultLabelBudget is the label length used when hints leave it unset.
const DefaultLabelBudget = 30

// StyleHints tune presentation only; they never change grouping.
type StyleHints struct {
	ChartType      string            `json:"chartType" yaml:"chart_type"`
	Title          string            `json:"title" yaml:"title"`
	LabelBudget    int               `json:"labelBudget" yaml:"label_budget"`
	Stacked        bool              `json:"stacked" yaml:"stacked"`
	Palette        []string          `json:"palette,omitempty" yaml:"palette"`
	CategoryColors map[string]string `json:"categoryColors,omitempty" yaml:"category_colors"`
}

// DefaultStyleHints returns hints for a bar chart over the cadre table.
func DefaultStyleHints() StyleHints {
	return StyleHints{
		ChartType:      "bar",
		LabelBudget:    DefaultLabelBudget,
		Palette:        DefaultPalette,
		CategoryColors: CadreColors,
	}
}

// ChartModel is the render-ready chart input.
type ChartModel struct {
	Type       string   `json:"chartType"`
	Title      string   `json:"title,omitempty"`
	XAxis      string   `json:"xAxis,omitempty"`
	Keys       []string `json:"keys"`
	Labels     []string `json:"labels"`
	Series     []Series `json:"series"`
	Colors     []string `json:"colors"`
	ShowLegend bool     `json:"showLegend"`
}

// Series is one numeric row of a chart. Single-series charts have one.
type Series struct {
	Name  string    `json:"name"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}

// Values returns the first series' data, which is the whole chart for
// single-series models.
func (c *ChartModel) Values() []float64 {
	if c == nil || len(c.Series) == 0 {
		return nil
	}
	return c.Series[0].Data
}

// Matrix returns series data as rows, for stacked widgets.
func (c *ChartModel) Matrix() [][]float64 {
	if c == nil {
		return nil
	}
	out := make([][]float64, len(c.Series))
	for i, s := range c.Series {
		out[i] = s.Data
	}
	return out
}

// BuildChart produces a ChartModel. An empty series yields an empty model,
// never nil.
func BuildChart(series engine.AggregatedSeries, hints StyleHints) *ChartModel {
	hints = withDefaults(hints)

	model := &ChartModel{
		Type:   hints.ChartType,
		Title:  hints.Title,
		XAxis:  LabelForDimension(series.Key),
		Keys:   series.Labels(),
		Labels: make([]string, len(series.Groups)),
		Series: []Series{},
		Colors: make([]string, len(series.Groups)),
	}

	for i, g := range series.Groups {
		model.Labels[i] = Truncate(g.Key, hints.LabelBudget)
		model.Colors[i] = ColorFor(g.Key, i, hints)
	}

	if len(series.Groups) == 0 {
		return model
	}

	if hints.Stacked && series.HasSubGroups() {
		model.Series = buildStackedSeries(series.Groups, hints)
		model.ShowLegend = true
	} else {
		model.Series = buildSingleSeries(series.Groups, hints.Title)
		model.ShowLegend = hints.ChartType == "pie" || hints.ChartType == "doughnut"
	}
	return model
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []engine.Group, seriesName string) []Series {
	if seriesName == "" {
		seriesName = "Total"
	}

	data := make([]float64, 0, len(groups))
	for _, g := range groups {
		data = append(data, float64(g.Total))
	}

	return []Series{{
		Name: seriesName,
		Data: data,
	}}
}

// buildStackedSeries emits one series per outcome, aligned to the group order.
func buildStackedSeries(groups []engine.Group, hints StyleHints) []Series {
	subKeySet := make(map[string]bool)
	var subKeys []string
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			if !subKeySet[sg.Key] {
				subKeySet[sg.Key] = true
				subKeys = append(subKeys, sg.Key)
			}
		}
	}
	engine.SortLabels(subKeys)

	series := make([]Series, 0, len(subKeys))
	for i, key := range subKeys {
		data := make([]float64, 0, len(groups))
		for _, g := range groups {
			var v int
			for _, sg := range g.SubGroups {
				if sg.Key == key {
					v = sg.Total
					break
				}
			}
			data = append(data, float64(v))
		}
		series = append(series, Series{
			Name:  key,
			Data:  data,
			Color: ColorFor(key, i, hints),
		})
	}
	return series
}

func withDefaults(h StyleHints) StyleHints {
	if h.ChartType == "" {
		h.ChartType = "bar"
	}
	if h.LabelBudget <= 0 {
		h.LabelBudget = DefaultLabelBudget
	}
	if len(h.Palette) == 0 {
		h.Palette = DefaultPalette
	}
	return h
}

// LabelForDimension returns an axis title for a dimension.
func LabelForDimension(d engine.Dimension) string {
	switch d {
	case engine.DimPeriod:
		return "Period"
	case engine.DimCategory:
		return "Category"
	case engine.DimSubCategory:
		return "Cadre"
	}
	return ""
}
