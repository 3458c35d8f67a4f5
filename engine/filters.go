package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spektr-org/cadrelens/category"
)

// ============================================================================
// FILTERS — Flatten + Single-Pass Filtering
// ============================================================================
// Flatten walks every period × item once, categorizing labels and coercing
// totals. ApplyFilters then checks all bound dimensions per row in one loop.
// ============================================================================

// Flatten turns a dataset into one FilteredResult per record, in period order
// then collection order. The input is not modified.
func Flatten(ds *Dataset, table category.Map) []FilteredResult {
	if ds == nil {
		return nil
	}

	rows := make([]FilteredResult, 0, ds.Len())
	for _, p := range ds.Periods {
		if p.Items == nil {
			continue
		}
		p.Items.each(func(r Record) {
			label := category.Clean(r.Label)
			rows = append(rows, FilteredResult{
				Period:      p.Key,
				Category:    category.Categorize(label, table),
				SubCategory: label,
				Outcome:     cleanOutcome(r.Outcome),
				Total:       CoerceTotal(r.Total),
			})
		})
	}
	return rows
}

// ApplyFilters returns the rows matching every bound dimension of sel.
// Period/category/sub-category match exactly; search is a case-insensitive
// substring of the label. Rows outside sel.Range are dropped.
func ApplyFilters(rows []FilteredResult, sel Selection, now time.Time) []FilteredResult {
	period := sel.Get(DimPeriod)
	cat := sel.Get(DimCategory)
	sub := sel.Get(DimSubCategory)
	search := sel.Get(DimSearch)
	if search != All {
		search = strings.ToLower(search)
	}

	out := make([]FilteredResult, 0, len(rows))
	for _, r := range rows {
		if period != All && r.Period != period {
			continue
		}
		if cat != All && r.Category != cat {
			continue
		}
		if sub != All && r.SubCategory != sub {
			continue
		}
		if search != All && !strings.Contains(strings.ToLower(r.SubCategory), search) {
			continue
		}
		if !sel.Range.Contains(r.Period, now) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CoerceTotal parses a raw total into a non-negative integer.
// Thousands separators are accepted; fractions are truncated; anything
// unparsable, negative or non-finite becomes 0.
func CoerceTotal(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func cleanOutcome(outcome string) string {
	if strings.TrimSpace(outcome) == "" {
		return ""
	}
	return category.Clean(outcome)
}
