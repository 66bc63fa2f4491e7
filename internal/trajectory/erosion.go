package trajectory

import "fmt"

// Erosion returns the real-terms percentage change of a salary trajectory
// at each period, deflated by a reference index trajectory of equal length
// and equal starting value: deflate the nominal value by the index's
// cumulative growth factor, then express the deflated value's deviation
// from the starting value as a percentage of it.
func Erosion(salary, reference *Trajectory) ([]float64, error) {
	if len(salary.Values) != len(reference.Values) {
		return nil, fmt.Errorf("erosion requires equal-length trajectories: %q has %d periods, %q has %d",
			salary.Name, len(salary.Values), reference.Name, len(reference.Values))
	}
	if len(salary.Values) == 0 {
		return nil, fmt.Errorf("erosion requires non-empty trajectories")
	}

	start := salary.Values[0]
	if start == 0 {
		return nil, fmt.Errorf("erosion undefined for zero starting value in %q", salary.Name)
	}

	series := make([]float64, len(salary.Values))
	for i := range salary.Values {
		deflator := reference.Values[i] / start
		if deflator == 0 {
			return nil, fmt.Errorf("reference trajectory %q is zero at period %d", reference.Name, int(reference.Periods[i]))
		}
		deflated := salary.Values[i] / deflator
		series[i] = (deflated - start) / start * 100
	}
	return series, nil
}
