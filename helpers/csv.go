package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/cadrelens/engine"
	"github.com/spektr-org/cadrelens/render"
	"github.com/spektr-org/cadrelens/schema"
)

// ============================================================================
// CSV HELPER — tabular input + export-row output
// ============================================================================
// Input: a CSV with a period column, a label column, a total column and an
// optional outcome column (names from the schema). Rows become a flat dataset.
// Output: export rows with stable headers; encoding/csv quotes any field that
// contains a comma.
// ============================================================================

type csvRow struct {
	period, label, total, outcome string
}

var csvAdapter = engine.NewDomainAdapter[csvRow]().
	Period(func(r csvRow) string { return r.period }).
	Label(func(r csvRow) string { return r.label }).
	Total(func(r csvRow) string { return r.total }).
	Outcome(func(r csvRow) string { return r.outcome })

// ParseCSV parses CSV bytes into a flat dataset using sch for column names.
func ParseCSV(data []byte, sch schema.Config) (*engine.Dataset, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := func(names ...string) int {
		for _, n := range names {
			if i, ok := index[strings.ToLower(n)]; ok {
				return i
			}
		}
		return -1
	}

	periodCol := col(sch.GetPeriodField(), "period", "year")
	labelCol := col(sch.LabelFields...)
	totalCol := col(sch.GetTotalField())
	outcomeCol := col(sch.OutcomeField)
	if periodCol < 0 || labelCol < 0 || totalCol < 0 {
		return nil, fmt.Errorf("%w: CSV needs period, label and total columns", ErrMalformedInput)
	}

	var rows []csvRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, csvRow{
			period:  strings.TrimSpace(cell(rec, periodCol)),
			label:   cell(rec, labelCol),
			total:   cell(rec, totalCol),
			outcome: cell(rec, outcomeCol),
		})
	}

	ds := csvAdapter.Bind(sch.Indicator, rows)
	sortPeriods(ds)
	return ds, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// WriteCSV writes export rows with a header line.
func WriteCSV(w io.Writer, rows []render.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(render.ExportHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes a chart model as label,value columns (one value
// column per series).
func WriteSeriesCSV(w io.Writer, model *render.ChartModel) error {
	cw := csv.NewWriter(w)
	header := []string{model.XAxis}
	if header[0] == "" {
		header[0] = "Label"
	}
	for _, s := range model.Series {
		header = append(header, s.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, key := range model.Keys {
		row := []string{key}
		for _, s := range model.Series {
			if i < len(s.Data) {
				row = append(row, fmtNum(s.Data[i]))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
