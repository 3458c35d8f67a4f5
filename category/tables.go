package category

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyTable is returned when a YAML table holds no categories.
var ErrEmptyTable = errors.New("category table is empty")

// Cadres groups qualification names used by registration, retention and
// internship datasets. The double-space midwife variant appears in source data.
var Cadres = Map{
	{Name: "Registered Nurses", Patterns: []string{
		"KENYA REGISTERED NURSE",
		"KENYA REGISTERED MIDWIFE",
		"KENYA  REGISTERED MIDWIFE",
		"KENYA REGISTERED COMMUNITY HEALTH NURSE",
		"KENYA REGISTERED PSYCHIATRIC NURSE",
		"KRN",
		"KRCHN",
	}},
	{Name: "Enrolled Nurses", Patterns: []string{
		"KENYA ENROLLED NURSE",
		"KENYA ENROLLED MIDWIFE",
		"KENYA ENROLLED COMMUNITY HEALTH NURSE",
		"KENYA ENROLLED PSYCHIATRIC NURSE",
		"KECHN",
	}},
	{Name: "BSc Nursing", Patterns: []string{
		"BACHELOR OF SCIENCE IN NURSING",
		"BSC NURSING",
		"BScN",
	}},
	{Name: "Specialists", Patterns: []string{
		"HIGHER DIPLOMA",
		"CRITICAL CARE",
		"NEPHROLOGY",
		"ONCOLOGY",
		"PERIOPERATIVE",
		"PAEDIATRIC",
		"OPHTHALMIC",
	}},
	{Name: "Masters", Patterns: []string{
		"MASTER OF SCIENCE IN NURSING",
		"MSC NURSING",
	}},
}

// Centers groups examination and training centre names.
var Centers = Map{
	{Name: "KMTC", Patterns: []string{"KMTC", "KENYA MEDICAL TRAINING COLLEGE"}},
	{Name: "University", Patterns: []string{"UNIVERSITY"}},
	{Name: "Faith-Based", Patterns: []string{"MISSION", "CATHOLIC", "AGA KHAN", "PCEA", "CONSOLATA", "MATER"}},
	{Name: "Private", Patterns: []string{"COLLEGE OF HEALTH", "SCHOOL OF NURSING", "INSTITUTE"}},
}

// Lookup returns a built-in table by name.
func Lookup(name string) (Map, bool) {
	switch name {
	case "cadres", "":
		return Cadres, true
	case "centers":
		return Centers, true
	}
	return nil, false
}

// LoadYAML reads an ordered table from a YAML mapping of category name to
// pattern list:
//
//	Registered Nurses:
//	  - KENYA REGISTERED NURSE
//	Enrolled Nurses:
//	  - KENYA ENROLLED NURSE
//
// Document order is kept, since the first matching entry wins.
func LoadYAML(data []byte) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse category table: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmptyTable
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("category table must be a mapping, got line %d", root.Line)
	}

	table := make(Map, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var patterns []string
		if err := root.Content[i+1].Decode(&patterns); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		table = append(table, Entry{Name: name, Patterns: patterns})
	}

	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	return table, nil
}
