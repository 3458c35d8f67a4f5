package engine

import (
	"time"
)

// ============================================================================
// EXECUTOR — (dataset, selection) → Result
// ============================================================================
// Entry point: Process(ds, sel, opts...)
//
// Pipeline:
//   1. Flatten + categorize every record
//   2. Discover filter options (unaffected by the selection, except range)
//   3. Apply filters → filtered rows
//   4. Choose group-by from the bound dimensions
//   5. Group and aggregate
//   6. Summarize
//
// Never returns an error: missing or empty data yields empty collections and
// zeroed statistics.
// ============================================================================

// Process derives the full view model for one dataset and selection.
func Process(ds *Dataset, sel Selection, opts ...Option) *Result {
	cfg := applyOptions(opts)
	now := cfg.Now()

	groupBy := ChooseGroupBy(sel)
	result := &Result{
		Selection: sel,
		Options:   AvailableOptions{Periods: []string{}, Categories: []string{}, SubCategories: []string{}},
		Filtered:  []FilteredResult{},
		GroupBy:   groupBy,
		Series:    AggregatedSeries{Key: groupBy, Groups: []Group{}},
	}
	if ds == nil {
		return result
	}
	result.Indicator = ds.Indicator

	rows := Flatten(ds, cfg.Categories)
	result.Options = DiscoverOptions(ds, rows, sel.Range, now)

	filtered := ApplyFilters(rows, sel, now)
	if len(filtered) > 0 {
		result.Filtered = filtered
		result.Series = GroupAndAggregate(filtered, groupBy)
	}

	cfg.Logger.Debug("processed dataset",
		"indicator", ds.Indicator,
		"records", len(rows),
		"filtered", len(filtered),
		"group_by", string(groupBy),
		"groups", len(result.Series.Groups))

	result.Summary = Summarize(filtered, result.Series, cfg.PassOutcomes)
	return result
}

// DiscoverOptions collects every period, category and sub-category a filter
// control may offer. Periods are narrowed by r; the rest never are.
func DiscoverOptions(ds *Dataset, rows []FilteredResult, r PeriodRange, now time.Time) AvailableOptions {
	opts := AvailableOptions{
		Periods:       []string{},
		Categories:    UniqueValues(rows, DimCategory),
		SubCategories: UniqueValues(rows, DimSubCategory),
	}
	if opts.Categories == nil {
		opts.Categories = []string{}
	}
	if opts.SubCategories == nil {
		opts.SubCategories = []string{}
	}

	if ds == nil {
		return opts
	}
	seen := make(map[string]bool)
	for _, p := range ds.Periods {
		if seen[p.Key] || !r.Contains(p.Key, now) {
			continue
		}
		seen[p.Key] = true
		opts.Periods = append(opts.Periods, p.Key)
	}
	SortLabels(opts.Periods)
	return opts
}
