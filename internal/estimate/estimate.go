// Package estimate derives a one-rep max from a submaximal set.
package estimate

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned for sets the formulas cannot describe.
var ErrOutOfRange = errors.New("set out of range")

// Brzycki diverges as reps approach 37.
const maxReps = 36

// Epley returns weight × (1 + reps/30).
func Epley(weight float64, reps int) (float64, error) {
	if err := check(weight, reps); err != nil {
		return 0, err
	}
	if reps == 1 {
		return weight, nil
	}
	return weight * (1 + float64(reps)/30), nil
}

// Brzycki returns weight / (1.0278 − 0.0278 × reps).
func Brzycki(weight float64, reps int) (float64, error) {
	if err := check(weight, reps); err != nil {
		return 0, err
	}
	if reps == 1 {
		return weight, nil
	}
	return weight / (1.0278 - 0.0278*float64(reps)), nil
}

// rpeTable is the percentage of 1RM by distance from a single at RPE 10,
// in half-RPE steps. One extra rep counts as one full RPE.
var rpeTable = []float64{
	1.000, 0.978, 0.955, 0.939, 0.922, 0.907, 0.892, 0.878, 0.863, 0.850,
	0.837, 0.824, 0.811, 0.799, 0.786, 0.774, 0.762, 0.751, 0.739, 0.723,
	0.707, 0.694, 0.680, 0.667, 0.653, 0.640, 0.626, 0.613, 0.599, 0.586,
}

// RPEPercent returns the fraction of 1RM for reps performed at rpe. rpe must
// be in half steps between 1 and 10.
func RPEPercent(reps int, rpe float64) (float64, error) {
	if reps < 1 {
		return 0, fmt.Errorf("%w: reps must be at least 1, got %d", ErrOutOfRange, reps)
	}
	if rpe < 1 || rpe > 10 || math.Mod(rpe*2, 1) != 0 {
		return 0, fmt.Errorf("%w: rpe must be 1-10 in half steps, got %v", ErrOutOfRange, rpe)
	}
	idx := 2*(reps-1) + int((10-rpe)*2)
	if idx >= len(rpeTable) {
		return 0, fmt.Errorf("%w: %d reps at rpe %v is beyond the chart", ErrOutOfRange, reps, rpe)
	}
	return rpeTable[idx], nil
}

// FromRPE estimates a 1RM from a set and its rated exertion.
func FromRPE(weight float64, reps int, rpe float64) (float64, error) {
	if err := check(weight, reps); err != nil {
		return 0, err
	}
	pct, err := RPEPercent(reps, rpe)
	if err != nil {
		return 0, err
	}
	return weight / pct, nil
}

// Result bundles every estimate for one set.
type Result struct {
	Weight  float64  `json:"weight"`
	Reps    int      `json:"reps"`
	Epley   float64  `json:"epley"`
	Brzycki float64  `json:"brzycki"`
	RPE     *float64 `json:"rpe,omitempty"`
	FromRPE *float64 `json:"from_rpe,omitempty"`
}

// All computes the Epley and Brzycki estimates, plus the RPE chart estimate
// when rpe is non-zero.
func All(weight float64, reps int, rpe float64) (Result, error) {
	e, err := Epley(weight, reps)
	if err != nil {
		return Result{}, err
	}
	b, err := Brzycki(weight, reps)
	if err != nil {
		return Result{}, err
	}
	r := Result{Weight: weight, Reps: reps, Epley: e, Brzycki: b}
	if rpe != 0 {
		f, err := FromRPE(weight, reps, rpe)
		if err != nil {
			return Result{}, err
		}
		r.RPE = &rpe
		r.FromRPE = &f
	}
	return r, nil
}

func check(weight float64, reps int) error {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrOutOfRange, weight)
	}
	if reps < 1 || reps > maxReps {
		return fmt.Errorf("%w: reps must be 1-%d, got %d", ErrOutOfRange, maxReps, reps)
	}
	return nil
}
