package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/cadrelens/category"
)

func TestCoerceTotal(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"100", 100},
		{" 1,234 ", 1234},
		{"12.9", 12},
		{"1e3", 1000},
		{"abc", 0},
		{"", 0},
		{"-5", 0},
		{"-2.5", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e12", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceTotal(tt.raw))
		})
	}
}

func TestFlatten_Order(t *testing.T) {
	keyed := NewKeyed()
	keyed.Add("b", Record{Label: "KRN", Total: "1"})
	keyed.Add("a", Record{Label: "KECHN", Total: "2"})
	keyed.Add("b", Record{Label: "KRCHN", Total: "3"}) // replaces, keeps position

	ds := &Dataset{Periods: []Period{
		{Key: "2022", Items: keyed},
		{Key: "2023", Items: Flat{{Label: "BSC NURSING", Total: "4", Outcome: " PASS "}}},
		{Key: "2024"},
	}}

	rows := Flatten(ds, category.Cadres)
	require.Len(t, rows, 3)
	assert.Equal(t, "KRCHN", rows[0].SubCategory)
	assert.Equal(t, "KECHN", rows[1].SubCategory)
	assert.Equal(t, "BSc Nursing", rows[2].Category)
	assert.Equal(t, "PASS", rows[2].Outcome)
	assert.Equal(t, 2, keyed.Len())
	assert.Equal(t, "b", keyed.Items["b"].Key)
}

func TestApplyFilters(t *testing.T) {
	rows := []FilteredResult{
		{Period: "2023", Category: "Registered Nurses", SubCategory: "KENYA REGISTERED MIDWIFE", Total: 1},
		{Period: "2023", Category: "Enrolled Nurses", SubCategory: "KENYA ENROLLED NURSE", Total: 2},
		{Period: "2024", Category: "Registered Nurses", SubCategory: "KENYA REGISTERED NURSE", Total: 3},
		{Period: "Cycle A", Category: "Other", SubCategory: "PHARMACY", Total: 4},
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sel  Selection
		want []int
	}{
		{"all", NewSelection(), []int{1, 2, 3, 4}},
		{"period", NewSelection().With(DimPeriod, "2023"), []int{1, 2}},
		{"category", NewSelection().With(DimCategory, "Registered Nurses"), []int{1, 3}},
		{"sub-category exact", NewSelection().With(DimSubCategory, "KENYA REGISTERED NURSE"), []int{3}},
		{"search case-insensitive", NewSelection().With(DimSearch, "midWIFE"), []int{1}},
		{"search matches label only", NewSelection().With(DimSearch, "Registered Nurses"), nil},
		{"combined", NewSelection().With(DimPeriod, "2023").With(DimCategory, "Enrolled Nurses"), []int{2}},
		{"range drops yearless", NewSelection().WithRange(PeriodRange{LastN: 1}), []int{3}},
		{"no match", NewSelection().With(DimPeriod, "1999"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(rows, tt.sel, now)
			var totals []int
			for _, r := range got {
				totals = append(totals, r.Total)
			}
			assert.Equal(t, tt.want, totals)
		})
	}
}
