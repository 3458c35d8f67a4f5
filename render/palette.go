package render

import "unicode/utf8"

// PaletteStride spreads consecutive indices across the palette so adjacent
// bars do not get adjacent shades.
const PaletteStride = 3

// DefaultPalette is the open-ended label palette.
var DefaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// CadreColors pins the coarse cadre categories to fixed colors.
var CadreColors = map[string]string{
	"Registered Nurses": "#1D4ED8",
	"Enrolled Nurses":   "#059669",
	"BSc Nursing":       "#D97706",
	"Specialists":       "#7C3AED",
	"Masters":           "#DB2777",
	"Other":             "#6B7280",
	"PASS":              "#16A34A",
	"FAIL":              "#DC2626",
}

// ColorFor picks a color for a group key at a position: the fixed table first,
// then palette[(index*PaletteStride) % len(palette)].
func ColorFor(key string, index int, hints StyleHints) string {
	if c, ok := hints.CategoryColors[key]; ok {
		return c
	}
	palette := hints.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if index < 0 {
		index = -index
	}
	return palette[(index*PaletteStride)%len(palette)]
}

// Truncate shortens a label to budget runes, ending with "…".
// Labels within budget, or a non-positive budget, are returned unchanged.
func Truncate(label string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(label) <= budget {
		return label
	}
	if budget == 1 {
		return "…"
	}
	runes := []rune(label)
	return string(runes[:budget-1]) + "…"
}
