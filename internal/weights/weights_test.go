package weights

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meltforce/liftplan/internal/models"
)

var stockMaxes = map[models.Lift]float64{
	models.Squat:    70,
	models.Bench:    47.5,
	models.Deadlift: 102.5,
}

func newStockCalculator() *Calculator {
	return NewCalculator(DefaultTable(), stockMaxes, nil, Steps{Main: 4, Secondary: 3})
}

// TestRound covers the worked examples, including the tie-to-lighter case.
func TestRound(t *testing.T) {
	tbl := DefaultTable()
	tests := []struct {
		target, want float64
	}{
		{73, 72.5},
		{22, 22.5},
		{71.25, 70},
		{49, 50},
		{56.25, 55},
		{100, 100},
		{40.375, 40},
		{26.125, 25},
	}
	for _, tt := range tests {
		if got := tbl.Round(tt.target); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

// TestRoundNearest sweeps targets and checks the result is increment-aligned
// and that no aligned neighbour is strictly closer.
func TestRoundNearest(t *testing.T) {
	tbl := DefaultTable()
	for target := 15.0; target < 300; target += 0.37 {
		got := tbl.Round(target)
		if r := math.Mod(got, tbl.Increment); r != 0 {
			t.Fatalf("Round(%v) = %v, not a multiple of %v", target, got, tbl.Increment)
		}
		d := math.Abs(got - target)
		for _, n := range []float64{got - tbl.Increment, got + tbl.Increment} {
			if math.Abs(n-target) < d {
				t.Fatalf("Round(%v) = %v, but %v is closer", target, got, n)
			}
		}
	}
}

func TestRampSquat(t *testing.T) {
	tbl := DefaultTable()
	got := tbl.Ramp(models.Squat, 20, 100, 5)
	want := []float64{20, 40, 60, 80, 100}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ramp mismatch (-want +got):\n%s", diff)
	}
}

// TestRampLightRungs verifies rungs under 40 are loaded to the nearest 10.
func TestRampLightRungs(t *testing.T) {
	tbl := DefaultTable()
	got := tbl.Ramp(models.Squat, 20, 62.5, 4)
	want := []float64{20, 40, 47.5, 62.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ramp mismatch (-want +got):\n%s", diff)
	}
}

// TestRampBench verifies the bare bar is kept and the rest starts at bar+10.
func TestRampBench(t *testing.T) {
	tbl := DefaultTable()
	got := tbl.Ramp(models.Bench, 20, 40, 4)
	want := []float64{20, 30, 35, 40}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ramp mismatch (-want +got):\n%s", diff)
	}
}

func TestRampMonotonic(t *testing.T) {
	tbl := DefaultTable()
	for _, lift := range models.Lifts {
		for target := 20.0; target <= 250; target += 2.5 {
			for n := 1; n <= 6; n++ {
				r := tbl.Ramp(lift, 20, target, n)
				if len(r) != n {
					t.Fatalf("%v ramp len = %d, want %d", lift, len(r), n)
				}
				for i := 1; i < len(r); i++ {
					if r[i] < r[i-1] {
						t.Fatalf("%v ramp to %v not monotonic: %v", lift, target, r)
					}
				}
			}
		}
	}
}

// TestRampTargetBelowStart verifies a target lighter than the starting
// weight keeps every rung at the start instead of dropping to the target.
func TestRampTargetBelowStart(t *testing.T) {
	tbl := DefaultTable()
	tests := []struct {
		lift          models.Lift
		start, target float64
		want          []float64
	}{
		{models.Bench, 20, 17.5, []float64{20, 20, 20, 20}},
		{models.Deadlift, 60, 55, []float64{60, 60, 60, 60}},
		{models.Squat, 40, 30, []float64{40, 40, 40}},
	}
	for _, tt := range tests {
		got := tbl.Ramp(tt.lift, tt.start, tt.target, len(tt.want))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%v Ramp(%v, %v) mismatch (-want +got):\n%s", tt.lift, tt.start, tt.target, diff)
		}
	}
}

func TestRampEmpty(t *testing.T) {
	if r := DefaultTable().Ramp(models.Bench, 20, 60, 0); len(r) != 0 {
		t.Errorf("Ramp(n=0) = %v, want empty", r)
	}
}

func TestCalculatorWeights(t *testing.T) {
	c := newStockCalculator()

	want := map[models.Lift][]Ladder{
		models.Squat: {
			{20, 30, 40, 50, 40},
			{20, 30, 42.5, 55, 47.5},
			{20, 40, 47.5, 62.5, 55},
		},
		models.Bench: {
			{20, 30, 35, 40, 32.5},
		},
		models.Deadlift: {
			{60, 67.5, 75, 82.5, 65},
		},
	}
	for lift, ladders := range want {
		got := c.Weights(lift, true)
		if diff := cmp.Diff(ladders, got[:len(ladders)]); diff != "" {
			t.Errorf("%v ladders mismatch (-want +got):\n%s", lift, diff)
		}
	}

	if diff := cmp.Diff([]float64{40, 47.5, 55}, c.Working(models.Squat)); diff != "" {
		t.Errorf("squat working mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{32.5, 35, 42.5}, c.Working(models.Bench)); diff != "" {
		t.Errorf("bench working mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculatorSecondary(t *testing.T) {
	c := newStockCalculator()
	got := c.Weights(models.Squat, false)[0]
	if diff := cmp.Diff(Ladder{20, 40, 50, 40}, got); diff != "" {
		t.Errorf("secondary ladder mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculatorDeload(t *testing.T) {
	c := newStockCalculator()
	want := map[models.Lift]Ladder{
		models.Squat:    {20, 37.5, 37.5},
		models.Bench:    {20, 25, 25},
		models.Deadlift: {40, 57.5, 57.5},
	}
	for lift, w := range want {
		if diff := cmp.Diff(w, c.Deload(lift)); diff != "" {
			t.Errorf("%v deload mismatch (-want +got):\n%s", lift, diff)
		}
	}
}

// TestSetOneRepMaxIsolated verifies that changing one max leaves the other
// lifts' ladders untouched.
func TestSetOneRepMaxIsolated(t *testing.T) {
	c := newStockCalculator()
	benchBefore := c.Weights(models.Bench, true)
	deadBefore := c.Deload(models.Deadlift)
	squatBefore := c.Weights(models.Squat, true)

	c.SetOneRepMax(models.Squat, 120)

	if diff := cmp.Diff(benchBefore, c.Weights(models.Bench, true)); diff != "" {
		t.Errorf("bench changed after squat update:\n%s", diff)
	}
	if diff := cmp.Diff(deadBefore, c.Deload(models.Deadlift)); diff != "" {
		t.Errorf("deadlift deload changed after squat update:\n%s", diff)
	}
	if cmp.Equal(squatBefore, c.Weights(models.Squat, true)) {
		t.Error("squat ladders not recomputed")
	}
	if c.OneRepMax(models.Squat) != 120 {
		t.Errorf("OneRepMax(squat) = %v, want 120", c.OneRepMax(models.Squat))
	}
}

// TestWeightsReturnsCopy verifies callers cannot mutate cached ladders.
func TestWeightsReturnsCopy(t *testing.T) {
	c := newStockCalculator()
	got := c.Weights(models.Squat, true)
	got[0][0] = 999
	if c.Weights(models.Squat, true)[0][0] == 999 {
		t.Error("Weights exposed internal state")
	}
}

func TestStartingWeightOverride(t *testing.T) {
	c := NewCalculator(DefaultTable(), stockMaxes, map[models.Lift]float64{models.Deadlift: 40}, Steps{Main: 4, Secondary: 3})
	if got := c.Weights(models.Deadlift, true)[0][0]; got != 40 {
		t.Errorf("deadlift first rung = %v, want 40", got)
	}
	if got := c.StartingWeight(models.Squat); got != 20 {
		t.Errorf("squat starting weight = %v, want table default 20", got)
	}
}

func TestLabel(t *testing.T) {
	tests := map[float64]string{
		70:    "70kg",
		72.5:  "72.5kg",
		102.5: "102.5kg",
		20:    "20kg",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTableValidate(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}

	tests := map[string]func(*Table){
		"zero increment":  func(t *Table) { t.Increment = 0 },
		"length mismatch": func(t *Table) { t.Percentages[models.Bench] = []float64{0.8, 0.9} },
		"missing lift":    func(t *Table) { delete(t.Percentages, models.Deadlift) },
		"negative pct":    func(t *Table) { t.Percentages[models.Squat][1] = -0.1 },
		"missing start":   func(t *Table) { delete(t.StartingWeights, models.Squat) },
		"no deload start": func(t *Table) { t.DeloadStartingWeights[models.Bench] = 0 },
		"empty working":   func(t *Table) { t.Working = nil },
		"zero deload prc": func(t *Table) { t.Deload = 0 },
	}
	for name, mutate := range tests {
		tbl := DefaultTable()
		mutate(tbl)
		if err := tbl.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	over := DefaultTable()
	over.Percentages[models.Bench][2] = 1.025
	if err := over.Validate(); err != nil {
		t.Errorf("percentage above 1.0 rejected: %v", err)
	}
}
