package weights

import (
	"math"

	"github.com/meltforce/liftplan/internal/models"
)

const (
	// candidates is the number of increment-aligned values considered by Round.
	candidates = 10

	// lightThreshold: ramp rungs below it are loaded to the nearest 10.
	lightThreshold = 40.0

	// benchOffset is added to the bar weight for the second bench rung.
	benchOffset = 10.0
)

// Round returns the increment-aligned weight nearest to target.
//
// Candidates start 10 below target rounded to the nearest 10 and step by
// the table increment. The first minimum wins, so exact ties resolve to
// the lighter weight.
func (t *Table) Round(target float64) float64 {
	base := roundTens(target) - 10
	best := base
	bestDist := math.Abs(base - target)
	for i := 1; i < candidates; i++ {
		c := base + t.Increment*float64(i)
		if d := math.Abs(c - target); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Ramp builds n ascending warm-up weights from start to target.
//
// Squat and deadlift interpolate the full range and load light rungs to the
// nearest 10. Bench keeps the bare bar as its first rung and interpolates
// the rest from bar+10. No rung falls below the first one, and a rung never
// exceeds the rung after it, so a target under start flattens the ramp at
// start.
func (t *Table) Ramp(lift models.Lift, start, target float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	var ramp []float64
	switch lift {
	case models.Squat, models.Deadlift:
		ramp = linspace(start, target, n)
		for i, v := range ramp {
			v = t.Round(v)
			if v < lightThreshold {
				v = roundTens(v)
			}
			ramp[i] = v
		}
	case models.Bench:
		ramp = make([]float64, 0, n)
		ramp = append(ramp, start)
		for _, v := range linspace(start+benchOffset, target, n-1) {
			ramp = append(ramp, t.Round(v))
		}
	default:
		panic("weights: ramp for " + models.ErrUnknownLift.Error())
	}

	for i := range ramp {
		ramp[i] = max(ramp[i], ramp[0])
	}
	for i := len(ramp) - 1; i > 0; i-- {
		if ramp[i-1] > ramp[i] {
			ramp[i-1] = ramp[i]
		}
	}
	return ramp
}

// roundTens rounds to the nearest multiple of 10, halves to even tens.
func roundTens(x float64) float64 {
	return math.RoundToEven(x/10) * 10
}

// linspace returns n evenly spaced values over [start, stop], inclusive.
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float64(i)*step + start
	}
	out[n-1] = stop
	return out
}
