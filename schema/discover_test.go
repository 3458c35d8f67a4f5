package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examPayload = `{
  "indicator": "exam_results",
  "data": {
    "2023": [
      {"ExamCenter": "KMTC NAIROBI", "OverallScore": "PASS", "Total": 30},
      {"ExamCenter": "KMTC NAIROBI", "OverallScore": "FAIL", "Total": 4},
      {"ExamCenter": "AGA KHAN UNIVERSITY", "OverallScore": "PASS", "Total": "12"}
    ]
  }
}`

const keyedPayload = `{
  "indicator": "licence_renewals",
  "data": {
    "2022": {
      "krn": {"Qualification": "KENYA REGISTERED NURSE", "Renewed": 150},
      "kecn": {"Qualification": "KENYA ENROLLED NURSE", "Renewed": 90}
    }
  }
}`

func TestDiscoverFromJSON_Flat(t *testing.T) {
	cfg, err := DiscoverFromJSON([]byte(examPayload))
	require.NoError(t, err)

	assert.Equal(t, "exam_results", cfg.Indicator)
	assert.Equal(t, "Exam Results", cfg.Name)
	assert.Equal(t, ShapeFlat, cfg.Shape)
	assert.Equal(t, "Total", cfg.TotalField)
	assert.Equal(t, "OverallScore", cfg.OutcomeField)
	assert.Equal(t, []string{"ExamCenter"}, cfg.LabelFields)
	assert.Equal(t, []string{"PASS", "PASSED", "P"}, cfg.PassOutcomes)
	assert.Equal(t, "centers", cfg.CategoryTable)
	assert.Equal(t, "json", cfg.DiscoveredFrom)
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverFromJSON_Keyed(t *testing.T) {
	cfg, err := DiscoverFromJSON([]byte(keyedPayload))
	require.NoError(t, err)

	assert.Equal(t, ShapeKeyed, cfg.Shape)
	assert.Equal(t, "Renewed", cfg.TotalField)
	assert.Empty(t, cfg.OutcomeField)
	assert.Equal(t, []string{"Qualification"}, cfg.LabelFields)
	assert.Equal(t, "cadres", cfg.CategoryTable)
	assert.Equal(t, "Licence Renewals", cfg.Name)
}

func TestDiscoverFromJSON_IndicatorOverride(t *testing.T) {
	cfg, err := DiscoverFromJSON([]byte(keyedPayload), DiscoverOptions{Indicator: "renewals"})
	require.NoError(t, err)
	assert.Equal(t, "renewals", cfg.Indicator)
}

func TestDiscoverFromJSON_FallbackLabel(t *testing.T) {
	payload := `{"data":{"2024":[{"Facility":"CONSOLATA HOSPITAL NKUBU","Count":"3"},{"Facility":"MATER HOSPITAL","Count":"5"}]}}`
	cfg, err := DiscoverFromJSON([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "dataset", cfg.Indicator)
	assert.Equal(t, []string{"Facility"}, cfg.LabelFields)
	assert.Equal(t, "Count", cfg.TotalField)
	assert.Equal(t, "centers", cfg.CategoryTable)
}

func TestDiscoverFromJSON_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid json": `{"data":`,
		"no data":      `{"indicator":"x"}`,
		"data array":   `{"data":[1,2]}`,
		"no records":   `{"data":{"2023":[]}}`,
		"numbers only": `{"data":{"2023":[{"a":1,"b":2}]}}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DiscoverFromJSON([]byte(payload))
			assert.Error(t, err)
		})
	}
}
