package engine

import "strconv"

// ============================================================================
// DOMAIN ADAPTER — build a Dataset from typed structs
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[ExamRow]().
//	    Period(func(r ExamRow) string { return r.Year }).
//	    Label(func(r ExamRow) string { return r.Center }).
//	    TotalInt(func(r ExamRow) int { return r.Candidates }).
//	    Outcome(func(r ExamRow) string { return r.Score })
//
//	ds := adapter.Bind("exam_results", rows)
//	result := engine.Process(ds, engine.NewSelection())
//
// Declare once, bind many times. Bound datasets are Flat per period, periods
// in order of first appearance.
// ============================================================================

// DomainAdapter reads typed structs via registered accessor functions.
type DomainAdapter[T any] struct {
	period  func(T) string
	label   func(T) string
	total   func(T) string
	outcome func(T) string
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{}
}

// Period registers the period accessor.
func (a *DomainAdapter[T]) Period(fn func(T) string) *DomainAdapter[T] {
	a.period = fn
	return a
}

// Label registers the label accessor.
func (a *DomainAdapter[T]) Label(fn func(T) string) *DomainAdapter[T] {
	a.label = fn
	return a
}

// Total registers a raw (string) total accessor.
func (a *DomainAdapter[T]) Total(fn func(T) string) *DomainAdapter[T] {
	a.total = fn
	return a
}

// TotalInt registers an integer total accessor.
func (a *DomainAdapter[T]) TotalInt(fn func(T) int) *DomainAdapter[T] {
	a.total = func(v T) string { return strconv.Itoa(fn(v)) }
	return a
}

// Outcome registers the outcome accessor.
func (a *DomainAdapter[T]) Outcome(fn func(T) string) *DomainAdapter[T] {
	a.outcome = fn
	return a
}

// Bind builds a Dataset from data. Missing accessors yield empty fields.
func (a *DomainAdapter[T]) Bind(indicator string, data []T) *Dataset {
	ds := &Dataset{Indicator: indicator}
	index := make(map[string]int)

	for _, v := range data {
		rec := Record{
			Label:   call(a.label, v),
			Total:   call(a.total, v),
			Outcome: call(a.outcome, v),
		}
		key := call(a.period, v)
		i, ok := index[key]
		if !ok {
			i = len(ds.Periods)
			index[key] = i
			ds.Periods = append(ds.Periods, Period{Key: key, Items: Flat{}})
		}
		ds.Periods[i].Items = append(ds.Periods[i].Items.(Flat), rec)
	}
	return ds
}

func call[T any](fn func(T) string, v T) string {
	if fn == nil {
		return ""
	}
	return fn(v)
}
