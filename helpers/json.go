package helpers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/spektr-org/cadrelens/engine"
	"github.com/spektr-org/cadrelens/schema"
)

// ============================================================================
// JSON HELPER — Parses a fetch payload into an engine.Dataset
// ============================================================================
// Payload: {"data": {period: [record...] | {itemKey: record}}, "indicator": "..."}
// The shape of each period is resolved here, once. Keyed items keep the order
// they appear in the document.
// ============================================================================

// ErrMalformedInput marks payloads the engine cannot read at all.
// The accompanying dataset is always usable (empty).
var ErrMalformedInput = errors.New("malformed input")

// ParseDataset parses a payload using sch to locate record fields.
// On malformed input it returns an empty dataset together with an error
// wrapping ErrMalformedInput.
func ParseDataset(data []byte, sch schema.Config) (*engine.Dataset, error) {
	empty := &engine.Dataset{Indicator: sch.Indicator}

	if !gjson.ValidBytes(data) {
		return empty, fmt.Errorf("%w: payload is not valid JSON", ErrMalformedInput)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return empty, fmt.Errorf("%w: payload is not an object", ErrMalformedInput)
	}
	if ind := root.Get("indicator"); ind.Exists() {
		empty.Indicator = ind.String()
	}

	payload := root.Get("data")
	if !payload.Exists() || !payload.IsObject() {
		return empty, fmt.Errorf("%w: missing data object", ErrMalformedInput)
	}

	ds := &engine.Dataset{Indicator: empty.Indicator}
	var badPeriod string
	payload.ForEach(func(key, value gjson.Result) bool {
		period := key.String()
		switch {
		case value.IsArray():
			ds.Periods = append(ds.Periods, engine.Period{Key: period, Items: parseFlat(value, sch)})
		case value.IsObject():
			ds.Periods = append(ds.Periods, engine.Period{Key: period, Items: parseKeyed(value, sch)})
		default:
			badPeriod = period
			return false
		}
		return true
	})
	if badPeriod != "" {
		return empty, fmt.Errorf("%w: period %q is neither a list nor an object", ErrMalformedInput, badPeriod)
	}

	sortPeriods(ds)
	return ds, nil
}

// sortPeriods orders periods by label (numeric years ascending).
func sortPeriods(ds *engine.Dataset) {
	sort.SliceStable(ds.Periods, func(i, j int) bool {
		return engine.CompareLabels(ds.Periods[i].Key, ds.Periods[j].Key) < 0
	})
}

func parseFlat(arr gjson.Result, sch schema.Config) engine.Flat {
	flat := engine.Flat{}
	arr.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			flat = append(flat, parseRecord(item, sch, ""))
		}
		return true
	})
	return flat
}

func parseKeyed(obj gjson.Result, sch schema.Config) *engine.Keyed {
	keyed := engine.NewKeyed()
	obj.ForEach(func(key, item gjson.Result) bool {
		if item.IsObject() {
			keyed.Add(key.String(), parseRecord(item, sch, key.String()))
		}
		return true
	})
	return keyed
}

// parseRecord reads one record. Field names match exactly first, then
// case-insensitively. Keyed records without a label fall back to their key.
func parseRecord(item gjson.Result, sch schema.Config, itemKey string) engine.Record {
	fields := make(map[string]gjson.Result)
	folded := make(map[string]gjson.Result)
	item.ForEach(func(k, v gjson.Result) bool {
		fields[k.String()] = v
		lower := strings.ToLower(k.String())
		if _, dup := folded[lower]; !dup {
			folded[lower] = v
		}
		return true
	})

	lookup := func(name string) (gjson.Result, bool) {
		if name == "" {
			return gjson.Result{}, false
		}
		if v, ok := fields[name]; ok {
			return v, true
		}
		v, ok := folded[strings.ToLower(name)]
		return v, ok
	}

	rec := engine.Record{}
	for _, name := range sch.LabelFields {
		if v, ok := lookup(name); ok && v.Type != gjson.Null {
			rec.Label = v.String()
			break
		}
	}
	if rec.Label == "" {
		rec.Label = itemKey
	}
	if v, ok := lookup(sch.GetTotalField()); ok {
		rec.Total = rawScalar(v)
	}
	if v, ok := lookup(sch.OutcomeField); ok {
		rec.Outcome = v.String()
	}
	return rec
}

// rawScalar keeps numbers in their JSON spelling so coercion sees "1e3" and
// "12.0" as written.
func rawScalar(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		return v.Raw
	case gjson.String:
		return v.Str
	}
	return ""
}
