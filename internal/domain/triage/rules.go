package triage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Rule maps symptom keywords to a specialization. Rules are checked in
// order and the first keyword hit wins, so more specific rules belong
// earlier in the table.
type Rule struct {
	Keywords       []string `json:"keywords"`
	Specialization string   `json:"specialization"`
}

// DefaultRules is the compiled-in triage table. A deployment can replace it
// with a JSON file without rebuilding.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"heart", "chest"}, Specialization: "Cardiologist"},
		{Keywords: []string{"throat", "ear"}, Specialization: "ENT"},
		{Keywords: []string{"fever"}, Specialization: "General Physician"},
		{Keywords: []string{"skin"}, Specialization: "Dermatologist"},
		{Keywords: []string{"eye"}, Specialization: "Ophthalmologist"},
		{Keywords: []string{"headache"}, Specialization: "Neurologist"},
	}
}

// LoadRules reads a rule table from a JSON file, in the same shape as
// DefaultRules.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read triage rules: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse triage rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("triage rules file %s is empty", path)
	}
	return rules, nil
}

// defaultSpecialization is recommended when no rule matches.
const defaultSpecialization = "General Physician"

// match runs the ordered rule table over the symptom text. Matching is a
// case-insensitive substring check.
func match(rules []Rule, symptoms string) string {
	text := strings.ToLower(symptoms)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return r.Specialization
			}
		}
	}
	return defaultSpecialization
}
