package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Defaults(t *testing.T) {
	s := NewSelection()
	for _, d := range Dimensions {
		assert.Equal(t, All, s.Get(d))
		assert.False(t, s.IsBound(d))
	}
	assert.Empty(t, s.Bound())
	assert.True(t, s.Range.IsZero())
}

func TestSelection_WithIsImmutable(t *testing.T) {
	base := NewSelection().With(DimPeriod, "2023")
	next := base.With(DimCategory, "Masters")

	assert.Equal(t, All, base.Get(DimCategory))
	assert.Equal(t, "Masters", next.Get(DimCategory))
	assert.Equal(t, "2023", next.Get(DimPeriod))

	cleared := next.With(DimPeriod, All)
	assert.False(t, cleared.IsBound(DimPeriod))
	assert.True(t, next.IsBound(DimPeriod))

	empty := next.With(DimCategory, "")
	assert.False(t, empty.IsBound(DimCategory))
}

func TestSelection_UnknownDimensionIgnored(t *testing.T) {
	s := NewSelection().With(Dimension("region"), "Nairobi")
	assert.Empty(t, s.Bound())
	assert.Equal(t, All, s.Get(Dimension("region")))
}

func TestSelection_Events(t *testing.T) {
	s := Replay(
		Change{Dimension: DimPeriod, Value: "2023"},
		Change{Dimension: DimSubCategory, Value: "KENYA REGISTERED NURSE"},
		ChangeRange{Range: PeriodRange{LastN: 3}},
		nil,
	)
	assert.Equal(t, []Dimension{DimPeriod, DimSubCategory}, s.Bound())
	assert.Equal(t, 3, s.Range.LastN)

	assert.Equal(t, NewSelection(), s.Apply(ClearAll{}))

	again := Replay(
		Change{Dimension: DimPeriod, Value: "2023"},
		Change{Dimension: DimSubCategory, Value: "KENYA REGISTERED NURSE"},
		ChangeRange{Range: PeriodRange{LastN: 3}},
	)
	assert.Equal(t, s, again)
}

func TestSelection_MarshalJSON(t *testing.T) {
	s := NewSelection().With(DimPeriod, "2023")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":"2023","category":"ALL","subCategory":"ALL","search":"ALL"}`, string(data))

	data, err = json.Marshal(s.WithRange(PeriodRange{FromYear: 2020}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":"2023","category":"ALL","subCategory":"ALL","search":"ALL","range":{"fromYear":2020}}`, string(data))
}

func TestPeriodYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2023", 2023, true},
		{"2023/2024", 2023, true},
		{"Cycle 2021", 2021, true},
		{"FY2019-Q1", 2019, true},
		{"12345", 0, false},
		{"FY23", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := PeriodYear(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodRange_Contains(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		r      PeriodRange
		period string
		want   bool
	}{
		{"zero keeps everything", PeriodRange{}, "Cycle A", true},
		{"last 3 includes current", PeriodRange{LastN: 3}, "2024", true},
		{"last 3 includes oldest", PeriodRange{LastN: 3}, "2022", true},
		{"last 3 drops older", PeriodRange{LastN: 3}, "2021", false},
		{"last 3 drops future", PeriodRange{LastN: 3}, "2025", false},
		{"from keeps later", PeriodRange{FromYear: 2022}, "2023", true},
		{"from drops earlier", PeriodRange{FromYear: 2022}, "2021", false},
		{"both", PeriodRange{LastN: 5, FromYear: 2022}, "2021", false},
		{"no year outside range", PeriodRange{FromYear: 2000}, "Cycle A", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.period, now))
		})
	}
}
