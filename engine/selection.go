package engine

import (
	"encoding/json"
	"strconv"
	"time"
)

// ============================================================================
// SELECTION — Immutable filter state + change events
// ============================================================================
// A Selection is never mutated in place. UI controls emit Change / ClearAll
// events and Apply returns the next Selection, so any sequence of events can
// be replayed to reproduce a view.
// ============================================================================

// Dimension names a filterable/groupable axis.
type Dimension string

const (
	DimPeriod      Dimension = "period"
	DimCategory    Dimension = "category"
	DimSubCategory Dimension = "subCategory"
	DimSearch      Dimension = "search"
)

// All is the "no constraint" sentinel.
const All = "ALL"

// Dimensions lists every dimension a Selection understands.
var Dimensions = []Dimension{DimPeriod, DimCategory, DimSubCategory, DimSearch}

func knownDimension(d Dimension) bool {
	for _, k := range Dimensions {
		if k == d {
			return true
		}
	}
	return false
}

// PeriodRange is the coarse year window applied before period options are
// offered. Zero value = unbounded.
type PeriodRange struct {
	LastN    int `json:"lastN,omitempty"`    // keep the last N years up to the current one
	FromYear int `json:"fromYear,omitempty"` // keep years >= FromYear
}

// IsZero reports whether the range constrains nothing.
func (r PeriodRange) IsZero() bool {
	return r.LastN <= 0 && r.FromYear <= 0
}

// Contains reports whether a period key falls inside the range.
// Periods without a recognizable year are outside any non-zero range.
func (r PeriodRange) Contains(period string, now time.Time) bool {
	if r.IsZero() {
		return true
	}
	year, ok := PeriodYear(period)
	if !ok {
		return false
	}
	if r.LastN > 0 {
		if year < now.Year()-r.LastN+1 || year > now.Year() {
			return false
		}
	}
	if r.FromYear > 0 && year < r.FromYear {
		return false
	}
	return true
}

// PeriodYear extracts the first run of four digits from a period key
// ("2023", "2023/2024", "Cycle 2021").
func PeriodYear(period string) (int, bool) {
	run := 0
	for i, r := range period {
		if r >= '0' && r <= '9' {
			run++
			if run == 4 && (i+1 >= len(period) || !isASCIIDigit(period[i+1])) {
				y, err := strconv.Atoi(period[i-3 : i+1])
				if err == nil {
					return y, true
				}
			}
			continue
		}
		run = 0
	}
	return 0, false
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// Selection maps dimensions to a selected value or All.
type Selection struct {
	values map[Dimension]string
	Range  PeriodRange
}

// NewSelection returns the default selection: every dimension All.
func NewSelection() Selection {
	return Selection{}
}

// Get returns the value bound to a dimension, or All.
func (s Selection) Get(d Dimension) string {
	if v, ok := s.values[d]; ok && v != "" {
		return v
	}
	return All
}

// IsBound reports whether a dimension is constrained.
func (s Selection) IsBound(d Dimension) bool {
	return s.Get(d) != All
}

// With returns a copy with one dimension changed. Empty value means All.
// Unknown dimensions are ignored.
func (s Selection) With(d Dimension, value string) Selection {
	if !knownDimension(d) {
		return s
	}
	next := s.clone()
	if value == "" || value == All {
		delete(next.values, d)
	} else {
		next.values[d] = value
	}
	return next
}

// WithRange returns a copy with a different period range.
func (s Selection) WithRange(r PeriodRange) Selection {
	next := s.clone()
	next.Range = r
	return next
}

func (s Selection) clone() Selection {
	next := Selection{values: make(map[Dimension]string, len(s.values)+1), Range: s.Range}
	for k, v := range s.values {
		next.values[k] = v
	}
	return next
}

// Bound returns the constrained dimensions in canonical order.
func (s Selection) Bound() []Dimension {
	var out []Dimension
	for _, d := range Dimensions {
		if s.IsBound(d) {
			out = append(out, d)
		}
	}
	return out
}

// MarshalJSON renders every dimension, including those left at All.
func (s Selection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(Dimensions)+1)
	for _, d := range Dimensions {
		out[string(d)] = s.Get(d)
	}
	if !s.Range.IsZero() {
		out["range"] = s.Range
	}
	return json.Marshal(out)
}

// ============================================================================
// EVENTS
// ============================================================================

// Event is a discrete filter change emitted by a UI control.
type Event interface {
	apply(Selection) Selection
}

// Change binds one dimension to a value (or All).
type Change struct {
	Dimension Dimension
	Value     string
}

func (c Change) apply(s Selection) Selection { return s.With(c.Dimension, c.Value) }

// ChangeRange replaces the coarse period range.
type ChangeRange struct {
	Range PeriodRange
}

func (c ChangeRange) apply(s Selection) Selection { return s.WithRange(c.Range) }

// ClearAll resets every dimension to All and drops the range.
type ClearAll struct{}

func (ClearAll) apply(Selection) Selection { return NewSelection() }

// Apply returns the selection that results from an event. Nil events are no-ops.
func (s Selection) Apply(ev Event) Selection {
	if ev == nil {
		return s
	}
	return ev.apply(s)
}

// Replay folds a sequence of events over the default selection.
func Replay(events ...Event) Selection {
	s := NewSelection()
	for _, ev := range events {
		s = s.Apply(ev)
	}
	return s
}
