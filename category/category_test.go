package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		table Map
		want  string
	}{
		{name: "exact registered nurse", label: "KENYA REGISTERED NURSE", table: Cadres, want: "Registered Nurses"},
		{name: "double-space midwife with CR", label: " KENYA  REGISTERED MIDWIFE\r", table: Cadres, want: "Registered Nurses"},
		{name: "enrolled", label: "KENYA ENROLLED COMMUNITY HEALTH NURSE", table: Cadres, want: "Enrolled Nurses"},
		{name: "label longer than pattern", label: "BACHELOR OF SCIENCE IN NURSING (UPGRADING)", table: Cadres, want: "BSc Nursing"},
		{name: "label shorter than pattern", label: "CRITICAL", table: Cadres, want: "Specialists"},
		{name: "case sensitive", label: "kenya registered nurse", table: Cadres, want: Other},
		{name: "unmatched", label: "DENTAL TECHNOLOGIST", table: Cadres, want: Other},
		{name: "empty label", label: "", table: Cadres, want: Other},
		{name: "whitespace only", label: " \t\r\n", table: Cadres, want: Other},
		{name: "nil table", label: "KENYA REGISTERED NURSE", table: nil, want: Other},
		{name: "center", label: "KMTC NAIROBI", table: Centers, want: "KMTC"},
		{name: "faith based", label: "CONSOLATA SCHOOL OF NURSING NKUBU", table: Centers, want: "Faith-Based"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.label, tt.table))
		})
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	table := Map{
		{Name: "First", Patterns: []string{"NURSE"}},
		{Name: "Second", Patterns: []string{"KENYA REGISTERED NURSE"}},
	}
	assert.Equal(t, "First", Categorize("KENYA REGISTERED NURSE", table))
}

func TestCategorize_EmptyPatternIgnored(t *testing.T) {
	table := Map{{Name: "Catch", Patterns: []string{""}}}
	assert.Equal(t, Other, Categorize("ANYTHING", table))
}

func TestCategorize_AlwaysNonEmpty(t *testing.T) {
	inputs := []string{"", " ", "\r", "\x00", "日本語", "UNKNOWN", "A", " "}
	for _, in := range inputs {
		assert.NotEmpty(t, Categorize(in, Cadres), "input %q", in)
		assert.NotEmpty(t, Categorize(in, Centers), "input %q", in)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "KENYA  REGISTERED MIDWIFE", Clean(" KENYA  REGISTERED MIDWIFE\r"))
	assert.Equal(t, Unknown, Clean(""))
	assert.Equal(t, Unknown, Clean("\r\n\t"))
	assert.Equal(t, "A B", Clean("\x00A B\x7f"))
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
Zeta:
  - ZZ
Alpha:
  - AA
  - AB
`)
	table, err := LoadYAML(data)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []string{"Zeta", "Alpha"}, table.Names())
	assert.Equal(t, []string{"AA", "AB"}, table[1].Patterns)
	assert.Equal(t, "Alpha", Categorize("XAB", table))
}

func TestLoadYAML_Errors(t *testing.T) {
	_, err := LoadYAML([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = LoadYAML([]byte("- a\n- b\n"))
	assert.Error(t, err)

	_, err = LoadYAML([]byte("Name: 3\n"))
	assert.Error(t, err)

	_, err = LoadYAML([]byte("{}"))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestLookup(t *testing.T) {
	m, ok := Lookup("centers")
	require.True(t, ok)
	assert.Equal(t, "KMTC", m[0].Name)

	m, ok = Lookup("")
	require.True(t, ok)
	assert.Equal(t, "Registered Nurses", m[0].Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
