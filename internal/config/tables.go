package config

import "github.com/mwhitfield/salary-truth/internal/trajectory"

// Adjustment rule names shared by all variants.
const (
	// RuleCostOfLiving2022 is the 2022 cost-of-living supplement, banded by
	// the running salary at the moment of the raise.
	RuleCostOfLiving2022 = "col-2022"

	// RulePlus2023 is the 2023 "plus" supplement whose shape differs per
	// variant.
	RulePlus2023 = "plus-2023"
)

// Variant is one named rule-set configuration. The observed rule sets
// disagree on the exact shape of the 2023 supplement, so each shape is kept
// as its own variant rather than merged.
type Variant struct {
	Name       string
	Periods    []trajectory.Period
	TierRates  map[string]map[trajectory.Period]float64
	IndexRates map[string]map[trajectory.Period]float64
	Rules      []trajectory.AdjustmentRule
}

// horizon is the observed range; 2017 is the base period.
var horizon = []trajectory.Period{2017, 2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025}

// Per-tier base raise percentages. The base period carries no raise and is
// deliberately absent; the 2022 cost-of-living component lives in
// RuleCostOfLiving2022 rather than in these tables.
var tierRates = map[string]map[trajectory.Period]float64{
	"average": {
		2018: 2.25, 2019: 2.25, 2020: 2.15, 2021: 2.30,
		2022: 2.30, 2023: 2.30, 2024: 2.30, 2025: 2.30,
	},
	"strong": {
		2018: 2.25, 2019: 2.25, 2020: 2.15, 2021: 2.75,
		2022: 2.75, 2023: 2.70, 2024: 2.70, 2025: 2.70,
	},
	"top": {
		2018: 2.25, 2019: 2.25, 2020: 2.15, 2021: 3.00,
		2022: 3.00, 2023: 3.00, 2024: 3.00, 2025: 3.00,
	},
}

// Published annual index rates. Index tables define the base period
// explicitly; it is zero relative to the starting value.
var indexRates = map[string]map[trajectory.Period]float64{
	"cpi": {
		2017: 0.0, 2018: 2.6, 2019: 2.3, 2020: 1.7, 2021: 1.0,
		2022: 2.5, 2023: 8.8, 2024: 4.2, 2025: 3.9,
	},
	"rpi": {
		2017: 0.0, 2018: 3.3, 2019: 2.6, 2020: 1.5, 2021: 4.1,
		2022: 11.6, 2023: 9.7, 2024: 3.6, 2025: 4.4,
	},
}

var costOfLiving2022 = trajectory.AdjustmentRule{
	Name:   RuleCostOfLiving2022,
	Period: 2022,
	Bands: []trajectory.Band{
		{Ceiling: 30000, Delta: 2.0},
		{Ceiling: 50000, Delta: 1.0},
	},
}

var variants = map[string]*Variant{
	"additive": {
		Name:       "additive",
		Periods:    horizon,
		TierRates:  tierRates,
		IndexRates: indexRates,
		Rules: []trajectory.AdjustmentRule{
			costOfLiving2022,
			{Name: RulePlus2023, Period: 2023, Flat: 2.5},
		},
	},
	"flat": {
		Name:       "flat",
		Periods:    horizon,
		TierRates:  tierRates,
		IndexRates: indexRates,
		Rules: []trajectory.AdjustmentRule{
			costOfLiving2022,
			{Name: RulePlus2023, Period: 2023, Flat: 2.0},
		},
	},
	"tiered": {
		Name:       "tiered",
		Periods:    horizon,
		TierRates:  tierRates,
		IndexRates: indexRates,
		Rules: []trajectory.AdjustmentRule{
			costOfLiving2022,
			{
				Name:   RulePlus2023,
				Period: 2023,
				Bands: []trajectory.Band{
					{Ceiling: 30000, Delta: 2.5},
					{Ceiling: 50000, Delta: 2.0},
				},
			},
		},
	},
}

// LookupVariant returns the compiled-in variant with the given name.
func LookupVariant(name string) (*Variant, bool) {
	v, ok := variants[name]
	return v, ok
}

// VariantNames returns the names of all compiled-in variants.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	return names
}

// TierNames returns the names of all performance tiers.
func TierNames() []string {
	names := make([]string, 0, len(tierRates))
	for name := range tierRates {
		names = append(names, name)
	}
	return names
}

// IndexNames returns the names of all published index tables.
func IndexNames() []string {
	names := make([]string, 0, len(indexRates))
	for name := range indexRates {
		names = append(names, name)
	}
	return names
}

// RuleNames returns the adjustment rule names defined by the variant.
func (v *Variant) RuleNames() []string {
	names := make([]string, 0, len(v.Rules))
	for _, rule := range v.Rules {
		names = append(names, rule.Name)
	}
	return names
}

// TierSelector returns a RateSelector over the named tier's raise table.
func (v *Variant) TierSelector(tier string) (trajectory.RateSelector, bool) {
	table, ok := v.TierRates[tier]
	if !ok {
		return nil, false
	}
	name := v.Name + "/" + tier
	return func(period trajectory.Period) (float64, error) {
		rate, ok := table[period]
		if !ok {
			return 0, &trajectory.MissingRateError{Table: name, Period: period}
		}
		return rate, nil
	}, true
}

// IndexSelector returns a RateSelector over the named published index table.
func (v *Variant) IndexSelector(index string) (trajectory.RateSelector, bool) {
	table, ok := v.IndexRates[index]
	if !ok {
		return nil, false
	}
	return func(period trajectory.Period) (float64, error) {
		rate, ok := table[period]
		if !ok {
			return 0, &trajectory.MissingRateError{Table: index, Period: period}
		}
		return rate, nil
	}, true
}

// ScenarioRules materializes the variant's rules with each rule enabled or
// disabled per the scenario's toggles. Rules absent from the toggle map
// default to enabled.
func (v *Variant) ScenarioRules(toggles map[string]bool) []trajectory.AdjustmentRule {
	rules := make([]trajectory.AdjustmentRule, len(v.Rules))
	for i, rule := range v.Rules {
		enabled, ok := toggles[rule.Name]
		if !ok {
			enabled = true
		}
		rule.Enabled = enabled
		rules[i] = rule
	}
	return rules
}
