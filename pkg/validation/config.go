package validation

import (
	"fmt"
	"sort"
	"strings"
)

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name        string
	Active      bool
	Tier        string
	Adjustments map[string]bool
}

// ConfigValidator validates a full configuration against the known rate
// tables and returns human-readable warnings.
type ConfigValidator struct {
	StartSalary    float64
	Variant        string
	ReferenceIndex string
	Indices        []string
	Scenarios      []ScenarioInfo
	KnownVariants  []string
	KnownTiers     []string
	KnownIndices   []string
	KnownRules     []string
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if cv.StartSalary <= 0 {
		warnings = append(warnings, fmt.Sprintf("Starting salary %.2f is not positive", cv.StartSalary))
	}

	if cv.Variant != "" && !contains(cv.KnownVariants, cv.Variant) {
		warnings = append(warnings, fmt.Sprintf("Unknown variant '%s' (known: %s)", cv.Variant, joinSorted(cv.KnownVariants)))
	}

	if cv.ReferenceIndex != "" && !contains(cv.KnownIndices, cv.ReferenceIndex) {
		warnings = append(warnings, fmt.Sprintf("Unknown reference index '%s' (known: %s)", cv.ReferenceIndex, joinSorted(cv.KnownIndices)))
	}

	for _, index := range cv.Indices {
		if !contains(cv.KnownIndices, index) {
			warnings = append(warnings, fmt.Sprintf("Unknown index '%s' (known: %s)", index, joinSorted(cv.KnownIndices)))
		}
	}

	active := 0
	for _, scenario := range cv.Scenarios {
		if !scenario.Active {
			continue
		}
		active++

		if !contains(cv.KnownTiers, scenario.Tier) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' references unknown tier '%s' (known: %s)",
				scenario.Name, scenario.Tier, joinSorted(cv.KnownTiers)))
		}

		for rule := range scenario.Adjustments {
			if !contains(cv.KnownRules, rule) {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' toggles unknown adjustment rule '%s' (known: %s)",
					scenario.Name, rule, joinSorted(cv.KnownRules)))
			}
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios configured - nothing to compute")
	}

	sort.Strings(warnings)
	return warnings
}

func contains(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

func joinSorted(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
