package engine

import (
	"strings"
)

// ============================================================================
// SUMMARY — Scalar metrics derived from filtered rows + the grouped series
// ============================================================================
// Every ratio goes through Rate or Growth, which return 0 instead of
// dividing by zero.
// ============================================================================

// DefaultPassOutcomes are the outcome codes counted as a pass.
var DefaultPassOutcomes = []string{"PASS", "PASSED", "P"}

// Summarize derives SummaryStats. passOutcomes compare case-insensitively.
func Summarize(rows []FilteredResult, series AggregatedSeries, passOutcomes []string) SummaryStats {
	var s SummaryStats
	s.RecordCount = len(rows)
	for _, r := range rows {
		s.GrandTotal += r.Total
	}

	periods := GroupAndAggregate(rows, DimPeriod)
	s.PeriodCount = len(periods.Groups)
	if s.PeriodCount > 0 {
		s.FirstPeriod = periods.Groups[0].Key
		s.LastPeriod = periods.Groups[s.PeriodCount-1].Key
		s.AveragePerPeriod = float64(s.GrandTotal) / float64(s.PeriodCount)
		s.PeakPeriod, s.PeakPeriodTotal = maxGroup(periods.Groups)
	}

	if series.Key == DimPeriod && len(series.Groups) > 0 {
		first := series.Groups[0].Total
		last := series.Groups[len(series.Groups)-1].Total
		s.Growth = Growth(first, last)
		s.HasGrowth = true
	}

	s.TopGroup, s.TopGroupTotal = maxGroup(series.Groups)

	summarizeOutcomes(&s, rows, passOutcomes)
	return s
}

func summarizeOutcomes(s *SummaryStats, rows []FilteredResult, passOutcomes []string) {
	totals := make(map[string]int)
	for _, r := range rows {
		if r.Outcome == "" {
			continue
		}
		totals[r.Outcome] += r.Total
		if isPass(r.Outcome, passOutcomes) {
			s.PassTotal += r.Total
		} else {
			s.FailTotal += r.Total
		}
	}
	if len(totals) == 0 {
		return
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	SortLabels(keys)

	s.Outcomes = make([]OutcomeStat, 0, len(keys))
	for _, k := range keys {
		s.Outcomes = append(s.Outcomes, OutcomeStat{
			Outcome: k,
			Total:   totals[k],
			Rate:    Rate(totals[k], s.GrandTotal),
		})
	}
	s.PassRate = Rate(s.PassTotal, s.GrandTotal)
	s.FailRate = Rate(s.FailTotal, s.GrandTotal)
}

func isPass(outcome string, passOutcomes []string) bool {
	for _, p := range passOutcomes {
		if strings.EqualFold(outcome, p) {
			return true
		}
	}
	return false
}

// maxGroup returns the highest-total group; ties keep the earlier group.
func maxGroup(groups []Group) (string, int) {
	if len(groups) == 0 {
		return "", 0
	}
	top := groups[0]
	for _, g := range groups[1:] {
		if g.Total > top.Total {
			top = g
		}
	}
	return top.Key, top.Total
}

// Rate returns part/whole as a percentage, or 0 when whole is 0.
func Rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Growth returns the percentage change from first to last, or 0 when first is 0.
func Growth(first, last int) float64 {
	if first == 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}
