package engine

// ============================================================================
// GROUP-BY POLICY
// ============================================================================
// The chart axis is a function of which of (period, category, subCategory)
// are bound. Search and range never change the axis.
// ============================================================================

type boundSet struct {
	period, category, subCategory bool
}

var groupByPolicy = map[boundSet]Dimension{
	{}:                                  DimPeriod,
	{period: true}:                      DimCategory,
	{category: true}:                    DimPeriod,
	{subCategory: true}:                 DimPeriod,
	{period: true, category: true}:      DimSubCategory,
	{period: true, subCategory: true}:   DimCategory,
	{category: true, subCategory: true}: DimPeriod,

	{period: true, category: true, subCategory: true}: DimPeriod,
}

// ChooseGroupBy returns the grouping dimension for a selection.
func ChooseGroupBy(sel Selection) Dimension {
	key := boundSet{
		period:      sel.IsBound(DimPeriod),
		category:    sel.IsBound(DimCategory),
		subCategory: sel.IsBound(DimSubCategory),
	}
	if d, ok := groupByPolicy[key]; ok {
		return d
	}
	return DimPeriod
}
