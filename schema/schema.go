package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spektr-org/cadrelens/category"
)

// ============================================================================
// SCHEMA — Describes the field layout of one indicator's payload
// ============================================================================
// Every indicator the backend serves uses its own field names for the label
// being categorized, the total, and (for exam results) the outcome code.
// Ingestion reads records through a Config; the engine never sees field names.
// ============================================================================

// ErrUnknownIndicator is returned for indicators with no built-in schema.
var ErrUnknownIndicator = errors.New("unknown indicator")

// Shapes a period's collection may take.
const (
	ShapeFlat  = "flat"
	ShapeKeyed = "keyed"
)

// Config describes one indicator.
type Config struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Indicator   string `json:"indicator" yaml:"indicator" mapstructure:"indicator"`
	Description string `json:"description,omitempty" yaml:"description" mapstructure:"description"`
	Shape       string `json:"shape,omitempty" yaml:"shape" mapstructure:"shape"` // expected shape; ingestion accepts both

	LabelFields  []string `json:"labelFields" yaml:"label_fields" mapstructure:"label_fields"` // first present wins
	TotalField   string   `json:"totalField" yaml:"total_field" mapstructure:"total_field"`
	OutcomeField string   `json:"outcomeField,omitempty" yaml:"outcome_field" mapstructure:"outcome_field"`
	PeriodField  string   `json:"periodField,omitempty" yaml:"period_field" mapstructure:"period_field"` // tabular inputs only

	PassOutcomes  []string `json:"passOutcomes,omitempty" yaml:"pass_outcomes" mapstructure:"pass_outcomes"`
	CategoryTable string   `json:"categoryTable" yaml:"category_table" mapstructure:"category_table"` // "cadres" or "centers"
	Headline      string   `json:"headline,omitempty" yaml:"headline" mapstructure:"headline"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty" yaml:"-" mapstructure:"-"`
}

// Table returns the category table named by the schema (cadres by default).
func (c Config) Table() category.Map {
	if m, ok := category.Lookup(c.CategoryTable); ok {
		return m
	}
	return category.Cadres
}

// GetTotalField returns the total field, or "Total" as fallback.
func (c Config) GetTotalField() string {
	if c.TotalField != "" {
		return c.TotalField
	}
	return "Total"
}

// GetPeriodField returns the period column for tabular inputs, or "Period".
func (c Config) GetPeriodField() string {
	if c.PeriodField != "" {
		return c.PeriodField
	}
	return "Period"
}

// Validate checks that a schema can drive ingestion.
func (c Config) Validate() error {
	var errs []error
	if c.Indicator == "" {
		errs = append(errs, errors.New("indicator is required"))
	}
	if len(c.LabelFields) == 0 {
		errs = append(errs, errors.New("at least one label field is required"))
	}
	if c.Shape != "" && c.Shape != ShapeFlat && c.Shape != ShapeKeyed {
		errs = append(errs, fmt.Errorf("shape must be %q or %q, got %q", ShapeFlat, ShapeKeyed, c.Shape))
	}
	if _, ok := category.Lookup(c.CategoryTable); !ok {
		errs = append(errs, fmt.Errorf("unknown category table %q", c.CategoryTable))
	}
	if len(c.PassOutcomes) > 0 && c.OutcomeField == "" {
		errs = append(errs, errors.New("pass outcomes set without an outcome field"))
	}
	return errors.Join(errs...)
}

// ============================================================================
// BUILT-IN INDICATORS
// ============================================================================

var builtins = map[string]Config{
	"registrations": {
		Name:          "Registrations",
		Indicator:     "registrations",
		Description:   "Newly registered nurses per year and cadre",
		Shape:         ShapeKeyed,
		LabelFields:   []string{"Cadre", "Qualification"},
		TotalField:    "Total",
		CategoryTable: "cadres",
		Headline:      "{total} registrations across {period}, {direction} {growth_percent}",
	},
	"retentions": {
		Name:          "Retentions",
		Indicator:     "retentions",
		Description:   "Licence retentions per year and cadre",
		Shape:         ShapeKeyed,
		LabelFields:   []string{"Cadre", "Qualification"},
		TotalField:    "Total",
		CategoryTable: "cadres",
		Headline:      "{total} retentions across {period}; peak {peak_period} ({peak_total})",
	},
	"exam_results": {
		Name:          "Exam Results",
		Indicator:     "exam_results",
		Description:   "Licensure examination candidates per centre and outcome",
		Shape:         ShapeFlat,
		LabelFields:   []string{"ExamCenter", "Center", "Centre"},
		TotalField:    "Total",
		OutcomeField:  "OverallScore",
		PassOutcomes:  []string{"PASS", "PASSED", "P"},
		CategoryTable: "centers",
		Headline:      "{total} candidates in {period}, pass rate {pass_rate}",
	},
	"internship_postings": {
		Name:          "Internship Postings",
		Indicator:     "internship_postings",
		Description:   "Interns posted per year and cadre",
		Shape:         ShapeKeyed,
		LabelFields:   []string{"Cadre", "Program"},
		TotalField:    "Total",
		CategoryTable: "cadres",
		Headline:      "{total} interns posted across {period}; most in {top_group}",
	},
	"internship_applications": {
		Name:          "Internship Applications",
		Indicator:     "internship_applications",
		Description:   "Internship applications per year and programme",
		Shape:         ShapeFlat,
		LabelFields:   []string{"Program", "Programme", "Cadre"},
		TotalField:    "Total",
		CategoryTable: "cadres",
		Headline:      "{total} applications across {period}, average {average} per period",
	},
}

// Builtin returns the schema for a known indicator.
func Builtin(indicator string) (Config, error) {
	c, ok := builtins[indicator]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownIndicator, indicator)
	}
	c.LabelFields = append([]string(nil), c.LabelFields...)
	c.PassOutcomes = append([]string(nil), c.PassOutcomes...)
	return c, nil
}

// Indicators lists the built-in indicator names, sorted.
func Indicators() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
