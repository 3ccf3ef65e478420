package weights

import (
	"math"
	"slices"
	"strconv"

	"github.com/meltforce/liftplan/internal/models"
)

// Ladder is one week's prescription for a lift: warm-up rungs followed by
// the working weight.
type Ladder []float64

// Working returns the last entry of the ladder.
func (l Ladder) Working() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1]
}

// Steps sets how many warm-up rungs precede the working weight.
type Steps struct {
	Main      int
	Secondary int
}

// liftWeights caches everything derived from one lift's 1RM.
type liftWeights struct {
	top       []float64 // percentage of 1RM, per week
	working   []float64 // working% applied on top, per week
	main      []Ladder
	secondary []Ladder
	deload    Ladder
}

// Calculator derives weekly ladders from a table and the trainee's maxes.
// It is not safe for concurrent mutation; build one per request or guard
// it externally.
type Calculator struct {
	table     *Table
	steps     Steps
	oneRepMax map[models.Lift]float64
	starting  map[models.Lift]float64
	lifts     map[models.Lift]*liftWeights
}

// NewCalculator computes all ladders up front. Starting weights missing
// from starting fall back to the table defaults.
func NewCalculator(table *Table, oneRepMax, starting map[models.Lift]float64, steps Steps) *Calculator {
	c := &Calculator{
		table:     table,
		steps:     steps,
		oneRepMax: make(map[models.Lift]float64, len(models.Lifts)),
		starting:  make(map[models.Lift]float64, len(models.Lifts)),
		lifts:     make(map[models.Lift]*liftWeights, len(models.Lifts)),
	}
	for _, lift := range models.Lifts {
		c.oneRepMax[lift] = oneRepMax[lift]
		if w, ok := starting[lift]; ok {
			c.starting[lift] = w
		} else {
			c.starting[lift] = table.StartingWeights[lift]
		}
		c.recompute(lift)
	}
	return c
}

// SetOneRepMax replaces one lift's max and recomputes that lift only.
func (c *Calculator) SetOneRepMax(lift models.Lift, v float64) {
	c.must(lift)
	c.oneRepMax[lift] = v
	c.recompute(lift)
}

// SetStartingWeight replaces the ramp's lower bound for one lift.
func (c *Calculator) SetStartingWeight(lift models.Lift, v float64) {
	c.must(lift)
	c.starting[lift] = v
	c.recompute(lift)
}

func (c *Calculator) OneRepMax(lift models.Lift) float64 {
	c.must(lift)
	return c.oneRepMax[lift]
}

func (c *Calculator) StartingWeight(lift models.Lift) float64 {
	c.must(lift)
	return c.starting[lift]
}

// Weights returns one ladder per non-deload week. main selects the main-set
// ramp length, otherwise the secondary one is used. The result is a copy.
func (c *Calculator) Weights(lift models.Lift, main bool) []Ladder {
	lw := c.must(lift)
	src := lw.secondary
	if main {
		src = lw.main
	}
	out := make([]Ladder, len(src))
	for i, l := range src {
		out[i] = slices.Clone(l)
	}
	return out
}

// Top returns the rounded percentage-of-1RM weight per week.
func (c *Calculator) Top(lift models.Lift) []float64 {
	return slices.Clone(c.must(lift).top)
}

// Working returns the prescribed working weight per week.
func (c *Calculator) Working(lift models.Lift) []float64 {
	return slices.Clone(c.must(lift).working)
}

// Deload returns the fixed deload ladder: the deload starting weight and
// two sets at the deload percentage.
func (c *Calculator) Deload(lift models.Lift) Ladder {
	return slices.Clone(c.must(lift).deload)
}

func (c *Calculator) must(lift models.Lift) *liftWeights {
	lw, ok := c.lifts[lift]
	if !ok {
		panic("weights: " + models.ErrUnknownLift.Error() + ": " + strconv.Itoa(int(lift)))
	}
	return lw
}

func (c *Calculator) recompute(lift models.Lift) {
	t := c.table
	orm := c.oneRepMax[lift]
	start := c.starting[lift]
	pct := t.Percentages[lift]

	lw := &liftWeights{
		top:       make([]float64, len(pct)),
		working:   make([]float64, len(pct)),
		main:      make([]Ladder, len(pct)),
		secondary: make([]Ladder, len(pct)),
	}
	for i, p := range pct {
		top := t.Round(p * orm)
		working := top
		if i < len(t.Working) {
			working = t.Round(t.Working[i] * top)
		}
		lw.top[i] = top
		lw.working[i] = working
		lw.main[i] = append(Ladder(t.Ramp(lift, start, top, c.steps.Main)), working)
		lw.secondary[i] = append(Ladder(t.Ramp(lift, start, top, c.steps.Secondary)), working)
	}

	d := t.Round(t.Deload * orm)
	lw.deload = Ladder{t.DeloadStartingWeights[lift], d, d}

	c.lifts[lift] = lw
}

// Label formats a weight for display: "70kg", "72.5kg".
func Label(w float64) string {
	if w == math.Trunc(w) {
		return strconv.FormatFloat(w, 'f', 0, 64) + "kg"
	}
	return strconv.FormatFloat(w, 'f', 1, 64) + "kg"
}
