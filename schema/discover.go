package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/spektr-org/cadrelens/category"
)

// ============================================================================
// AUTO-DISCOVERY — heuristic schema for an unknown payload
// ============================================================================
// Inspects sample records of a {"data": ...} payload and guesses:
//   1. Shape  → first period is an array (flat) or object (keyed)
//   2. Total  → a field named like "total", else the first numeric field
//   3. Label  → a preferred name (Cadre, ExamCenter, ...), else the first
//               mostly non-numeric text field
//   4. Outcome → a low-cardinality text field named like score/outcome/result
//   5. Table  → whichever category table leaves fewer labels in "Other"
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize int    // Max records to inspect. Default: 200
	Indicator  string // Indicator override (otherwise read from payload)
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{SampleSize: 200}
}

var (
	preferredLabels   = []string{"cadre", "qualification", "examcenter", "center", "centre", "program", "programme", "name"}
	outcomeHints      = []string{"score", "outcome", "result", "status"}
	maxOutcomeKinds   = 6
	numericShareLabel = 0.5
)

type fieldStats struct {
	name     string
	seen     int
	numeric  int
	distinct map[string]bool
	values   []string
}

// DiscoverFromJSON generates a Config by inspecting a fetch payload.
func DiscoverFromJSON(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.SampleSize <= 0 {
		opt.SampleSize = 200
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	payload := root.Get("data")
	if !payload.IsObject() {
		return nil, fmt.Errorf("payload has no data object")
	}

	cfg := &Config{
		Indicator:      opt.Indicator,
		DiscoveredFrom: "json",
	}
	if cfg.Indicator == "" {
		cfg.Indicator = root.Get("indicator").String()
	}
	if cfg.Indicator == "" {
		cfg.Indicator = "dataset"
	}
	cfg.Name = toDisplayName(cfg.Indicator)

	// 1. Sample records
	var order []string
	stats := make(map[string]*fieldStats)
	sampled := 0
	payload.ForEach(func(_, period gjson.Result) bool {
		if cfg.Shape == "" {
			if period.IsArray() {
				cfg.Shape = ShapeFlat
			} else if period.IsObject() {
				cfg.Shape = ShapeKeyed
			}
		}
		period.ForEach(func(_, rec gjson.Result) bool {
			if !rec.IsObject() {
				return true
			}
			rec.ForEach(func(k, v gjson.Result) bool {
				name := k.String()
				fs, ok := stats[name]
				if !ok {
					fs = &fieldStats{name: name, distinct: make(map[string]bool)}
					stats[name] = fs
					order = append(order, name)
				}
				fs.observe(v)
				return true
			})
			sampled++
			return sampled < opt.SampleSize
		})
		return sampled < opt.SampleSize
	})

	if sampled == 0 {
		return nil, fmt.Errorf("payload has no records")
	}

	// 2. Total
	for _, name := range order {
		if strings.Contains(strings.ToLower(name), "total") {
			cfg.TotalField = name
			break
		}
	}
	if cfg.TotalField == "" {
		for _, name := range order {
			if stats[name].isNumeric() {
				cfg.TotalField = name
				break
			}
		}
	}

	// 3. Outcome (before label, so a score column is never picked as label)
	for _, name := range order {
		fs := stats[name]
		if name == cfg.TotalField || fs.isNumeric() {
			continue
		}
		if hasHint(name, outcomeHints) && len(fs.distinct) <= maxOutcomeKinds {
			cfg.OutcomeField = name
			break
		}
	}

	// 4. Label
	for _, pref := range preferredLabels {
		for _, name := range order {
			if strings.EqualFold(name, pref) && name != cfg.OutcomeField {
				cfg.LabelFields = append(cfg.LabelFields, name)
			}
		}
	}
	if len(cfg.LabelFields) == 0 {
		for _, name := range order {
			fs := stats[name]
			if name == cfg.TotalField || name == cfg.OutcomeField || fs.numericShare() >= numericShareLabel {
				continue
			}
			cfg.LabelFields = append(cfg.LabelFields, name)
			break
		}
	}
	if len(cfg.LabelFields) == 0 {
		return nil, fmt.Errorf("no text field usable as label")
	}

	if cfg.OutcomeField != "" {
		cfg.PassOutcomes = []string{"PASS", "PASSED", "P"}
	}

	// 5. Category table
	cfg.CategoryTable = pickTable(stats[cfg.LabelFields[0]].values)
	return cfg, nil
}

func (fs *fieldStats) observe(v gjson.Result) {
	fs.seen++
	s := strings.TrimSpace(v.String())
	if v.Type == gjson.Number || isNumeric(s) {
		fs.numeric++
	}
	if len(fs.distinct) <= maxOutcomeKinds*4 {
		fs.distinct[s] = true
	}
	fs.values = append(fs.values, s)
}

func (fs *fieldStats) numericShare() float64 {
	if fs.seen == 0 {
		return 0
	}
	return float64(fs.numeric) / float64(fs.seen)
}

func (fs *fieldStats) isNumeric() bool {
	return fs.seen > 0 && fs.numeric == fs.seen
}

// pickTable chooses the table that categorizes more of the sample.
func pickTable(labels []string) string {
	best, bestHits := "cadres", -1
	for _, name := range []string{"cadres", "centers"} {
		table, _ := category.Lookup(name)
		hits := 0
		for _, l := range labels {
			if category.Categorize(l, table) != category.Other {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = name, hits
		}
	}
	return best
}

func hasHint(name string, hints []string) bool {
	lower := strings.ToLower(name)
	for _, h := range hints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return err == nil
}

// toDisplayName converts "exam_results" → "Exam Results".
func toDisplayName(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
