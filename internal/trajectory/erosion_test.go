package trajectory

import (
	"testing"

	"github.com/mwhitfield/salary-truth/pkg/mathutil"
)

func TestErosionAgainstSelfIsZero(t *testing.T) {
	engine := NewEngine(nil)

	periods := []Period{2017, 2018, 2019, 2020}
	rates := tableSelector("test", map[Period]float64{
		2018: 2.6, 2019: 2.3, 2020: 1.7,
	})

	traj, err := engine.ComputeSalary("self", 40000, periods, rates, nil)
	if err != nil {
		t.Fatalf("ComputeSalary() error = %v", err)
	}

	series, err := Erosion(traj, traj)
	if err != nil {
		t.Fatalf("Erosion() error = %v", err)
	}
	for i, change := range series {
		if !mathutil.WithinTolerance(change, 0, 1e-9) {
			t.Errorf("erosion[%d] = %v, expected exactly 0 against itself", i, change)
		}
	}
}

func TestErosionDeflatesByIndexGrowth(t *testing.T) {
	engine := NewEngine(nil)

	periods := []Period{2017, 2018}
	salary, err := engine.ComputeSalary("salary", 40000, periods,
		tableSelector("raises", map[Period]float64{2018: 2.0}), nil)
	if err != nil {
		t.Fatalf("ComputeSalary() error = %v", err)
	}
	reference, err := engine.ComputeIndex("cpi", 40000, periods,
		tableSelector("cpi", map[Period]float64{2017: 0.0, 2018: 4.0}))
	if err != nil {
		t.Fatalf("ComputeIndex() error = %v", err)
	}

	series, err := Erosion(salary, reference)
	if err != nil {
		t.Fatalf("Erosion() error = %v", err)
	}

	// 40800 deflated by 1.04 is 39230.77, a 1.923% real-terms loss.
	if !mathutil.WithinTolerance(series[0], 0, 1e-9) {
		t.Errorf("erosion[0] = %v, expected 0 at the base period", series[0])
	}
	if !mathutil.WithinTolerance(series[1], -1.923077, 1e-4) {
		t.Errorf("erosion[1] = %v, expected about -1.9231", series[1])
	}
}

func TestErosionLengthMismatch(t *testing.T) {
	a := &Trajectory{Name: "a", Periods: []Period{2017, 2018}, Values: []float64{100, 102}}
	b := &Trajectory{Name: "b", Periods: []Period{2017}, Values: []float64{100}}
	if _, err := Erosion(a, b); err == nil {
		t.Error("expected an error for mismatched trajectory lengths")
	}
}

func TestErosionEmptyTrajectories(t *testing.T) {
	a := &Trajectory{Name: "a"}
	b := &Trajectory{Name: "b"}
	if _, err := Erosion(a, b); err == nil {
		t.Error("expected an error for empty trajectories")
	}
}
