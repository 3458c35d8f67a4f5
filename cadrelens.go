// Package cadrelens is the analytics core of the nursing-regulator dashboard.
//
// Usage:
//
//	sch, _ := schema.Builtin("registrations")
//	ds, err := helpers.ParseDataset(payload, sch)
//
//	sel := engine.Replay(engine.Change{Dimension: engine.DimPeriod, Value: "2023"})
//	result := engine.Process(ds, sel, engine.WithCategoryMap(sch.Table()))
//
//	chart := render.BuildChart(result.Series, render.DefaultStyleHints())
//	rows := render.ExportRows(result.Filtered)
//
// Labels are mapped to coarse categories by the category package, the engine
// filters, groups and summarizes, and render turns the result into chart,
// table and export models. Fetching lives in the source package; the engine
// never performs I/O.
package cadrelens
