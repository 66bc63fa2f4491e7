// Package forecast defines the data structures related to a computed
// forecast and includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/mwhitfield/salary-truth/internal/config"
	"github.com/mwhitfield/salary-truth/internal/trajectory"
	"go.uber.org/zap"
)

// Series kinds.
const (
	KindSalary = "salary"
	KindIndex  = "index"
)

// Result holds one computed series: a salary scenario or a published index.
type Result struct {
	Name           string
	Kind           string
	Periods        []trajectory.Period
	Values         []float64
	EffectiveRates []float64
	// Erosion is the per-period real-terms percentage change against the
	// configured reference index. Salary series only.
	Erosion []float64
}

// FinalValue returns the value at the last period.
func (r *Result) FinalValue() float64 {
	return r.Values[len(r.Values)-1]
}

// SeriesSummary holds the scalar figures for one series.
type SeriesSummary struct {
	Name       string
	Kind       string
	FinalValue float64
	// RealTermsGap is the signed difference between this series' final value
	// and the reference index's final value. Salary series only.
	RealTermsGap float64
	// RealTermsChange is the final-period erosion percentage. Salary series
	// only.
	RealTermsChange float64
}

// Summary aggregates the scalar figures across all computed series.
type Summary struct {
	ReferenceIndex string
	Series         []SeriesSummary
}

// GetForecast computes every active salary scenario and every requested
// index series from the configuration, plus the erosion series and summary
// figures. Each call recomputes everything from scratch; results are never
// shared or mutated.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Result, Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	variant, err := conf.ResolveVariant()
	if err != nil {
		return nil, Summary{}, err
	}

	engine := trajectory.NewEngine(logger)
	startSalary := conf.Common.StartSalary
	summary := Summary{ReferenceIndex: conf.Common.ReferenceIndex}

	refSelector, ok := variant.IndexSelector(conf.Common.ReferenceIndex)
	if !ok {
		return nil, Summary{}, fmt.Errorf("unknown reference index %q, known indices: %v",
			conf.Common.ReferenceIndex, config.IndexNames())
	}
	reference, err := engine.ComputeIndex(conf.Common.ReferenceIndex, startSalary, variant.Periods, refSelector)
	if err != nil {
		return nil, Summary{}, err
	}

	var results []Result

	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		selector, ok := variant.TierSelector(scenario.Tier)
		if !ok {
			return nil, Summary{}, fmt.Errorf("scenario %q references unknown tier %q, known tiers: %v",
				scenario.Name, scenario.Tier, config.TierNames())
		}

		rules := variant.ScenarioRules(scenario.Adjustments)
		salary, err := engine.ComputeSalary(scenario.Name, startSalary, variant.Periods, selector, rules)
		if err != nil {
			return nil, Summary{}, err
		}

		erosion, err := trajectory.Erosion(salary, reference)
		if err != nil {
			return nil, Summary{}, err
		}

		results = append(results, Result{
			Name:           salary.Name,
			Kind:           KindSalary,
			Periods:        salary.Periods,
			Values:         salary.Values,
			EffectiveRates: salary.EffectiveRates,
			Erosion:        erosion,
		})

		summary.Series = append(summary.Series, SeriesSummary{
			Name:            salary.Name,
			Kind:            KindSalary,
			FinalValue:      salary.FinalValue(),
			RealTermsGap:    trajectory.FinalGap(salary, reference),
			RealTermsChange: erosion[len(erosion)-1],
		})
	}

	for _, index := range conf.Common.Indices {
		selector, ok := variant.IndexSelector(index)
		if !ok {
			return nil, Summary{}, fmt.Errorf("unknown index %q, known indices: %v", index, config.IndexNames())
		}

		series, err := engine.ComputeIndex(index, startSalary, variant.Periods, selector)
		if err != nil {
			return nil, Summary{}, err
		}

		results = append(results, Result{
			Name:           series.Name,
			Kind:           KindIndex,
			Periods:        series.Periods,
			Values:         series.Values,
			EffectiveRates: series.EffectiveRates,
		})

		summary.Series = append(summary.Series, SeriesSummary{
			Name:       series.Name,
			Kind:       KindIndex,
			FinalValue: series.FinalValue(),
		})
	}

	logger.Debug("forecast computed",
		zap.String("op", "forecast.GetForecast"),
		zap.Int("series", len(results)),
		zap.String("referenceIndex", conf.Common.ReferenceIndex),
	)

	return results, summary, nil
}
