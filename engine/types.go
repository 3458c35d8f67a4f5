package engine

// ============================================================================
// CADRELENS ENGINE TYPES
// ============================================================================
// Raw datasets arrive in two shapes (flat arrays per period, or keyed item
// maps per period). Ingestion resolves the shape once into Collection; the
// engine only ever walks Collections.
//
// Dependency: engine imports only the category package.
// ============================================================================

// ============================================================================
// RECORD + DATASET
// ============================================================================

// Record is one raw statistics row as fetched.
// Total stays raw here; CoerceTotal turns it into a count.
type Record struct {
	Key     string `json:"key,omitempty"` // item key for keyed collections
	Label   string `json:"label"`
	Total   string `json:"total"`
	Outcome string `json:"outcome,omitempty"` // e.g. OverallScore on exam results
}

// Collection is the per-period record container: either Flat or Keyed.
type Collection interface {
	Len() int
	each(fn func(Record))
}

// Flat is an ordered sequence of records (exam results, internship applications).
type Flat []Record

func (f Flat) Len() int { return len(f) }

func (f Flat) each(fn func(Record)) {
	for _, r := range f {
		fn(r)
	}
}

// Keyed maps item keys to records (registrations, retentions, postings).
// Keys holds insertion order; iteration follows it.
type Keyed struct {
	Keys  []string
	Items map[string]Record
}

// NewKeyed creates an empty keyed collection.
func NewKeyed() *Keyed {
	return &Keyed{Items: make(map[string]Record)}
}

// Add stores a record under key. Re-adding a key replaces the record but keeps
// its original position.
func (k *Keyed) Add(key string, r Record) {
	if _, exists := k.Items[key]; !exists {
		k.Keys = append(k.Keys, key)
	}
	r.Key = key
	k.Items[key] = r
}

func (k *Keyed) Len() int { return len(k.Keys) }

func (k *Keyed) each(fn func(Record)) {
	for _, key := range k.Keys {
		fn(k.Items[key])
	}
}

// Period is one time bucket of the dataset.
type Period struct {
	Key   string
	Items Collection
}

// Dataset is the normalized form of a fetched payload.
// Indicator is passed through untouched.
type Dataset struct {
	Indicator string
	Periods   []Period
}

// Len returns the number of records across all periods.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Periods {
		if p.Items != nil {
			n += p.Items.Len()
		}
	}
	return n
}

// ============================================================================
// DERIVED VIEW MODEL
// ============================================================================

// FilteredResult is one record after categorization and coercion.
type FilteredResult struct {
	Period      string `json:"period"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Outcome     string `json:"outcome,omitempty"`
	Total       int    `json:"total"`
}

// AvailableOptions lists every value a filter control may offer.
type AvailableOptions struct {
	Periods       []string `json:"periods"`
	Categories    []string `json:"categories"`
	SubCategories []string `json:"subCategories"`
}

// Group is one aggregated bucket. SubGroups split it by outcome when the
// dataset carries outcomes.
type Group struct {
	Key       string  `json:"key"`
	Total     int     `json:"total"`
	Count     int     `json:"count"`
	SubGroups []Group `json:"subGroups,omitempty"`
}

// AggregatedSeries holds group totals in presentation order.
type AggregatedSeries struct {
	Key    Dimension `json:"key"`
	Groups []Group   `json:"groups"`
}

// Labels returns group keys in presentation order.
func (s AggregatedSeries) Labels() []string {
	labels := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		labels[i] = g.Key
	}
	return labels
}

// Totals returns the group key → total mapping.
func (s AggregatedSeries) Totals() map[string]int {
	totals := make(map[string]int, len(s.Groups))
	for _, g := range s.Groups {
		totals[g.Key] = g.Total
	}
	return totals
}

// Sum returns the sum of all group totals.
func (s AggregatedSeries) Sum() int {
	var sum int
	for _, g := range s.Groups {
		sum += g.Total
	}
	return sum
}

// HasSubGroups reports whether any group carries an outcome breakdown.
func (s AggregatedSeries) HasSubGroups() bool {
	for _, g := range s.Groups {
		if len(g.SubGroups) > 0 {
			return true
		}
	}
	return false
}

// SummaryStats are the scalar metrics shown next to a chart.
type SummaryStats struct {
	GrandTotal       int     `json:"grandTotal"`
	RecordCount      int     `json:"recordCount"`
	PeriodCount      int     `json:"periodCount"`
	FirstPeriod      string  `json:"firstPeriod,omitempty"`
	LastPeriod       string  `json:"lastPeriod,omitempty"`
	AveragePerPeriod float64 `json:"averagePerPeriod"`

	Growth    float64 `json:"growth"`
	HasGrowth bool    `json:"hasGrowth"`

	TopGroup        string `json:"topGroup,omitempty"`
	TopGroupTotal   int    `json:"topGroupTotal"`
	PeakPeriod      string `json:"peakPeriod,omitempty"`
	PeakPeriodTotal int    `json:"peakPeriodTotal"`

	PassTotal int           `json:"passTotal"`
	FailTotal int           `json:"failTotal"`
	PassRate  float64       `json:"passRate"`
	FailRate  float64       `json:"failRate"`
	Outcomes  []OutcomeStat `json:"outcomes,omitempty"`
}

// OutcomeStat is the total and share of one outcome code.
type OutcomeStat struct {
	Outcome string  `json:"outcome"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// Result is everything a view needs for one (dataset, selection) pair.
type Result struct {
	Indicator string           `json:"indicator,omitempty"`
	Selection Selection        `json:"selection"`
	Options   AvailableOptions `json:"options"`
	Filtered  []FilteredResult `json:"filtered"`
	GroupBy   Dimension        `json:"groupBy"`
	Series    AggregatedSeries `json:"series"`
	Summary   SummaryStats     `json:"summary"`
}
