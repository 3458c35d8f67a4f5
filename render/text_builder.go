package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spektr-org/cadrelens/engine"
)

// ============================================================================
// TEXT BUILDER — headline sentences from summary statistics
// ============================================================================

// DefaultHeadline is used when no template is configured.
const DefaultHeadline = "{total} across {period} ({record_count} records)."

// Headline substitutes summary values into a template such as
// "{total} nurses registered in {period}, growth {growth_percent}".
// Placeholders with no value are stripped.
func Headline(template string, result *engine.Result) string {
	if result == nil || result.Summary.RecordCount == 0 {
		return "No matching records found."
	}
	if template == "" {
		template = DefaultHeadline
	}

	s := result.Summary
	replacements := map[string]string{
		"{total}":        FormatInt(s.GrandTotal),
		"{record_count}": FormatInt(s.RecordCount),
		"{period}":       PeriodSpan(s),
		"{average}":      FormatInt(int(s.AveragePerPeriod + 0.5)),
		"{indicator}":    result.Indicator,
	}
	if s.HasGrowth {
		replacements["{growth_percent}"] = FormatPercent(s.Growth)
		replacements["{direction}"] = Direction(s.Growth)
	}
	if s.TopGroup != "" {
		replacements["{top_group}"] = s.TopGroup
		replacements["{top_total}"] = FormatInt(s.TopGroupTotal)
	}
	if s.PeakPeriod != "" {
		replacements["{peak_period}"] = s.PeakPeriod
		replacements["{peak_total}"] = FormatInt(s.PeakPeriodTotal)
	}
	if len(s.Outcomes) > 0 {
		replacements["{pass_rate}"] = FormatPercent(s.PassRate)
		replacements["{fail_rate}"] = FormatPercent(s.FailRate)
	}

	out := template
	for placeholder, value := range replacements {
		if value == "" {
			continue
		}
		out = strings.ReplaceAll(out, placeholder, value)
	}
	return stripUnresolvedPlaceholders(out)
}

// PeriodSpan renders "2021 – 2024", a single period, or "No data".
func PeriodSpan(s engine.SummaryStats) string {
	switch {
	case s.PeriodCount == 0:
		return "No data"
	case s.PeriodCount == 1 || s.FirstPeriod == s.LastPeriod:
		return s.FirstPeriod
	}
	return fmt.Sprintf("%s – %s", s.FirstPeriod, s.LastPeriod)
}

// Direction describes a growth percentage.
func Direction(growth float64) string {
	switch {
	case growth > 0.5:
		return "increased"
	case growth < -0.5:
		return "decreased"
	}
	return "unchanged"
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatPercent formats a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

var placeholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

func stripUnresolvedPlaceholders(text string) string {
	cleaned := placeholderRegex.ReplaceAllString(text, "")
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, " ,—-–")
	if cleaned == "" {
		return text
	}
	return cleaned
}
