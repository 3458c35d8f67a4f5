package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spektr-org/cadrelens/category"
)

// ============================================================================
// AGGREGATORS — Grouping, Summing, and Label Ordering
// ============================================================================
// Pipeline: group → sum → (outcome sub-groups) → sort.
// Label order is a pure function of the labels, so re-running on the same
// rows yields identical output.
// ============================================================================

// GroupAndAggregate sums row totals per value of the given dimension.
func GroupAndAggregate(rows []FilteredResult, by Dimension) AggregatedSeries {
	series := AggregatedSeries{Key: by}
	if len(rows) == 0 {
		return series
	}

	index := make(map[string]int)
	var members [][]FilteredResult
	for _, r := range rows {
		key := DimensionValue(r, by)
		i, ok := index[key]
		if !ok {
			i = len(series.Groups)
			index[key] = i
			series.Groups = append(series.Groups, Group{Key: key})
			members = append(members, nil)
		}
		series.Groups[i].Total += r.Total
		series.Groups[i].Count++
		members[i] = append(members[i], r)
	}

	if hasOutcomes(rows) {
		for i := range series.Groups {
			series.Groups[i].SubGroups = groupByOutcome(members[i])
		}
	}

	SortGroups(series.Groups)
	return series
}

// DimensionValue returns the value of a row along a dimension.
func DimensionValue(r FilteredResult, d Dimension) string {
	switch d {
	case DimPeriod:
		return r.Period
	case DimCategory:
		return r.Category
	case DimSubCategory:
		return r.SubCategory
	}
	return ""
}

func groupByOutcome(rows []FilteredResult) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range rows {
		key := r.Outcome
		if key == "" {
			key = category.Unknown
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Total += r.Total
		groups[i].Count++
	}
	SortGroups(groups)
	return groups
}

func hasOutcomes(rows []FilteredResult) bool {
	for _, r := range rows {
		if r.Outcome != "" {
			return true
		}
	}
	return false
}

// ============================================================================
// ORDERING
// ============================================================================

// SortGroups orders groups by CompareLabels on their keys.
func SortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return CompareLabels(groups[i].Key, groups[j].Key) < 0
	})
}

// SortLabels orders labels in place by CompareLabels.
func SortLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return CompareLabels(labels[i], labels[j]) < 0
	})
}

// CompareLabels orders integer labels numerically before all other labels,
// which compare by byte order. Numerically equal integers ("07", "7") fall
// back to byte order.
func CompareLabels(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)

	switch {
	case aErr == nil && bErr == nil:
		if ai < bi {
			return -1
		}
		if ai > bi {
			return 1
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// UniqueValues returns the distinct, sorted values of a dimension.
func UniqueValues(rows []FilteredResult, d Dimension) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := DimensionValue(r, d)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	SortLabels(out)
	return out
}
