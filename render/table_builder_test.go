package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/cadrelens/engine"
)

func processed(t *testing.T) *engine.Result {
	t.Helper()
	ds := &engine.Dataset{
		Indicator: "registrations",
		Periods: []engine.Period{
			{Key: "2023", Items: engine.Flat{
				{Label: "KENYA REGISTERED NURSE", Total: "1,500"},
				{Label: "KENYA ENROLLED NURSE, RURAL", Total: "500"},
			}},
			{Key: "2024", Items: engine.Flat{
				{Label: "KENYA REGISTERED NURSE", Total: "1000"},
			}},
		},
	}
	return engine.Process(ds, engine.NewSelection())
}

func TestExportRows(t *testing.T) {
	r := processed(t)
	rows := ExportRows(r.Filtered)

	require.Len(t, rows, 3)
	assert.Equal(t, ExportRow{Period: "2023", Category: "Registered Nurses", Label: "KENYA REGISTERED NURSE", Total: 1500}, rows[0])
	assert.Equal(t, "KENYA ENROLLED NURSE, RURAL", rows[1].Label)
	assert.Equal(t, []string{"2024", "Registered Nurses", "KENYA REGISTERED NURSE", "1000"}, rows[2].Values())

	assert.NotNil(t, ExportRows(nil))
	assert.Empty(t, ExportRows(nil))
}

func TestBuildTable(t *testing.T) {
	r := processed(t)
	table := BuildTable("Registrations", r.Series, r.Summary)

	assert.Equal(t, "Registrations", table.Title)
	require.Len(t, table.Columns, 4)
	assert.Equal(t, "Period", table.Columns[0].Label)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2023", "2,000", "2", "66.7%"}, table.Rows[0])
	assert.Equal(t, []string{"2024", "1,000", "1", "33.3%"}, table.Rows[1])

	require.NotNil(t, table.Summary)
	assert.Equal(t, "3,000", table.Summary.Values["total"])
	assert.Equal(t, "3", table.Summary.Values["count"])
	assert.Equal(t, "100.0%", table.Summary.Values["share"])
}

func TestBuildTable_Empty(t *testing.T) {
	table := BuildTable("", engine.AggregatedSeries{}, engine.SummaryStats{})
	assert.Empty(t, table.Rows)
	assert.Equal(t, "Group", table.Columns[0].Label)
	assert.Equal(t, "0.0%", table.Summary.Values["share"])
}
