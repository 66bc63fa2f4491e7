// Package trajectory computes compounded value series over a fixed horizon:
// salary paths driven by per-year raise tables with conditional threshold
// adjustments, and index paths driven purely by published rates.
package trajectory

import (
	"fmt"

	"github.com/mwhitfield/salary-truth/pkg/mathutil"
	"go.uber.org/zap"
)

// Period is one calendar year in the compounding horizon.
type Period int

// RateSelector returns the unadjusted percentage rate for a period. A lookup
// miss is a configuration error and is reported as a *MissingRateError.
type RateSelector func(period Period) (float64, error)

// MissingRateError indicates a period was requested that the rate table does
// not define. The set of valid periods is fixed at configuration time, so
// this is a programming error rather than a recoverable condition.
type MissingRateError struct {
	Table  string
	Period Period
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("rate table %q has no rate for period %d", e.Table, int(e.Period))
}

// Band grants an additive percentage delta when the running value is at or
// below Ceiling. Bands are evaluated in order; the first match wins.
type Band struct {
	Ceiling float64
	Delta   float64
}

// AdjustmentRule is a period-specific conditional addition to a salary
// trajectory's base rate. With no bands the Flat delta applies
// unconditionally; otherwise the first band whose ceiling covers the current
// running value supplies the delta. Rules never apply to index trajectories.
type AdjustmentRule struct {
	Name    string
	Period  Period
	Flat    float64
	Bands   []Band
	Enabled bool
}

// Delta evaluates the rule against the running value at the moment of the
// period's raise. The second return reports whether any band matched.
func (r AdjustmentRule) Delta(value float64) (float64, bool) {
	if len(r.Bands) == 0 {
		return r.Flat, true
	}
	for _, band := range r.Bands {
		if value <= band.Ceiling {
			return band.Delta, true
		}
	}
	return 0, false
}

// Trajectory is the computed artifact: for each period the compounded value
// and the effective percentage rate used to reach it. It is constructed
// fresh on every computation and never mutated afterwards.
type Trajectory struct {
	Name           string
	Periods        []Period
	Values         []float64
	EffectiveRates []float64
}

// FinalValue returns the value at the last period.
func (t *Trajectory) FinalValue() float64 {
	return t.Values[len(t.Values)-1]
}

// FinalGap returns the signed difference between two trajectories' final
// values (a minus b).
func FinalGap(a, b *Trajectory) float64 {
	return a.FinalValue() - b.FinalValue()
}

// Engine computes trajectories. It carries no state between computations.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a trajectory engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ComputeSalary produces a salary-style trajectory: the base period
// contributes 0%, and every later period compounds by the selected base rate
// plus the deltas of all enabled rules for that period that match the
// pre-update running value. Thresholds are checked against the compounded
// value at the moment of the raise, not the starting value.
func (e *Engine) ComputeSalary(name string, startValue float64, periods []Period, rates RateSelector, rules []AdjustmentRule) (*Trajectory, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("trajectory %q requires at least one period", name)
	}

	t := &Trajectory{
		Name:           name,
		Periods:        append([]Period(nil), periods...),
		Values:         make([]float64, 0, len(periods)),
		EffectiveRates: make([]float64, 0, len(periods)),
	}

	current := startValue
	t.Values = append(t.Values, current)
	t.EffectiveRates = append(t.EffectiveRates, 0)

	for _, period := range periods[1:] {
		baseRate, err := rates(period)
		if err != nil {
			return nil, err
		}

		effectiveRate := baseRate
		for _, rule := range rules {
			if !rule.Enabled || rule.Period != period {
				continue
			}
			delta, matched := rule.Delta(current)
			if !matched {
				continue
			}
			e.logger.Debug("adjustment rule triggered",
				zap.String("op", "trajectory.ComputeSalary"),
				zap.String("trajectory", name),
				zap.String("rule", rule.Name),
				zap.Int("period", int(period)),
				zap.Float64("value", current),
				zap.Float64("delta", delta),
			)
			effectiveRate += delta
		}

		current *= mathutil.CompoundFactor(effectiveRate)
		t.Values = append(t.Values, current)
		t.EffectiveRates = append(t.EffectiveRates, effectiveRate)
	}

	return t, nil
}

// ComputeIndex produces a pure compounding trajectory from a scalar rate
// table. Unlike salary trajectories the base period compounds by the table's
// own base-period rate; shipped tables define 0 there, but a nonzero rate is
// honored.
func (e *Engine) ComputeIndex(name string, startValue float64, periods []Period, rates RateSelector) (*Trajectory, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("trajectory %q requires at least one period", name)
	}

	t := &Trajectory{
		Name:           name,
		Periods:        append([]Period(nil), periods...),
		Values:         make([]float64, 0, len(periods)),
		EffectiveRates: make([]float64, 0, len(periods)),
	}

	current := startValue
	for _, period := range periods {
		rate, err := rates(period)
		if err != nil {
			return nil, err
		}
		current *= mathutil.CompoundFactor(rate)
		t.Values = append(t.Values, current)
		t.EffectiveRates = append(t.EffectiveRates, rate)
	}

	return t, nil
}
