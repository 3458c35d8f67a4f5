package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type examRow struct {
	Year       string
	Center     string
	Candidates int
	Score      string
}

func TestDomainAdapter_Bind(t *testing.T) {
	adapter := NewDomainAdapter[examRow]().
		Period(func(r examRow) string { return r.Year }).
		Label(func(r examRow) string { return r.Center }).
		TotalInt(func(r examRow) int { return r.Candidates }).
		Outcome(func(r examRow) string { return r.Score })

	rows := []examRow{
		{"2024", "KMTC NAKURU", 12, "PASS"},
		{"2023", "KMTC NAKURU", 8, "FAIL"},
		{"2024", "KMTC MACHAKOS", 5, "PASS"},
	}
	ds := adapter.Bind("exam_results", rows)

	assert.Equal(t, "exam_results", ds.Indicator)
	require.Len(t, ds.Periods, 2)
	assert.Equal(t, "2024", ds.Periods[0].Key)
	assert.Equal(t, 2, ds.Periods[0].Items.Len())
	assert.Equal(t, 3, ds.Len())

	first := ds.Periods[0].Items.(Flat)[0]
	assert.Equal(t, Record{Label: "KMTC NAKURU", Total: "12", Outcome: "PASS"}, first)

	r := Process(ds, NewSelection())
	assert.Equal(t, 25, r.Summary.GrandTotal)
	assert.Equal(t, []string{"2023", "2024"}, r.Series.Labels())
}

func TestDomainAdapter_MissingAccessors(t *testing.T) {
	ds := NewDomainAdapter[examRow]().Bind("x", []examRow{{Year: "2023"}})
	require.Len(t, ds.Periods, 1)
	assert.Equal(t, "", ds.Periods[0].Key)
	assert.Equal(t, Record{}, ds.Periods[0].Items.(Flat)[0])

	empty := NewDomainAdapter[examRow]().Bind("x", nil)
	assert.Empty(t, empty.Periods)
}
