package category

import (
	"strings"
	"unicode"
)

// ============================================================================
// CATEGORIZER — raw label → coarse category
// ============================================================================
// Pure function of (label, table). Entries are tried in table order and the
// first containment hit wins. Containment is bidirectional and case-sensitive.
// ============================================================================

const (
	// Other is returned when no entry matches.
	Other = "Other"
	// Unknown replaces empty labels before matching.
	Unknown = "UNKNOWN"
)

// Entry is one coarse category and the label fragments that belong to it.
type Entry struct {
	Name     string   `yaml:"name" json:"name"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// Map is an ordered category table. Order decides ties.
type Map []Entry

// Names returns the category names in table order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for _, e := range m {
		names = append(names, e.Name)
	}
	return names
}

// Categorize maps a raw label to its coarse category.
func Categorize(label string, table Map) string {
	clean := Clean(label)

	for _, entry := range table {
		if entry.matches(clean) {
			return entry.Name
		}
	}
	return Other
}

func (e Entry) matches(label string) bool {
	for _, p := range e.Patterns {
		if p == "" {
			continue
		}
		if strings.Contains(label, p) || strings.Contains(p, label) {
			return true
		}
	}
	return false
}

// Clean trims surrounding whitespace and control characters.
// Empty results become Unknown so every record has a usable key.
func Clean(label string) string {
	clean := strings.TrimFunc(label, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	if clean == "" {
		return Unknown
	}
	return clean
}
