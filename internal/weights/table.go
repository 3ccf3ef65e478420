package weights

import (
	"fmt"

	"github.com/meltforce/liftplan/internal/models"
)

// Table is the percentage table driving the mesocycle. It is immutable
// once validated; callers share a single *Table across trainees.
type Table struct {
	// Increment is the plate granularity, e.g. 2.5.
	Increment float64 `json:"weight_increase"`

	// Percentages holds the per-week fraction of 1RM for each lift.
	Percentages map[models.Lift][]float64 `json:"percentages"`

	// Working is applied on top of the weekly weight to get the top-set load.
	Working []float64 `json:"working"`

	Deload float64 `json:"deload"`

	StartingWeights       map[models.Lift]float64 `json:"starting_weights"`
	DeloadStartingWeights map[models.Lift]float64 `json:"starting_weights_deload"`
}

// DefaultTable returns the stock four-week table.
func DefaultTable() *Table {
	return &Table{
		Increment: 2.5,
		Percentages: map[models.Lift][]float64{
			models.Squat:    {0.7, 0.8, 0.9},
			models.Bench:    {0.85, 0.9, 0.975},
			models.Deadlift: {0.8, 0.87, 0.95},
		},
		Working: []float64{0.8, 0.85, 0.9},
		Deload:  0.55,
		StartingWeights: map[models.Lift]float64{
			models.Squat:    20,
			models.Bench:    20,
			models.Deadlift: 60,
		},
		DeloadStartingWeights: map[models.Lift]float64{
			models.Squat:    20,
			models.Bench:    20,
			models.Deadlift: 40,
		},
	}
}

// Weeks is the number of non-deload weeks the table covers.
func (t *Table) Weeks() int {
	return len(t.Working)
}

// Validate checks the structural invariants. Percentages above 1.0 are
// accepted.
func (t *Table) Validate() error {
	if t.Increment <= 0 {
		return fmt.Errorf("weight_increase must be positive, got %v", t.Increment)
	}
	if len(t.Working) == 0 {
		return fmt.Errorf("prc_working must not be empty")
	}
	for i, p := range t.Working {
		if p <= 0 {
			return fmt.Errorf("prc_working[%d] must be positive, got %v", i, p)
		}
	}
	if t.Deload <= 0 {
		return fmt.Errorf("prc_deload must be positive, got %v", t.Deload)
	}
	for _, lift := range models.Lifts {
		pct, ok := t.Percentages[lift]
		if !ok {
			return fmt.Errorf("prc_%s is required", lift.Key())
		}
		if len(pct) != len(t.Working) {
			return fmt.Errorf("prc_%s has %d weeks, prc_working has %d", lift.Key(), len(pct), len(t.Working))
		}
		for i, p := range pct {
			if p <= 0 {
				return fmt.Errorf("prc_%s[%d] must be positive, got %v", lift.Key(), i, p)
			}
		}
		if w, ok := t.StartingWeights[lift]; !ok || w <= 0 {
			return fmt.Errorf("starting_weights.%s must be positive", lift.Key())
		}
		if w, ok := t.DeloadStartingWeights[lift]; !ok || w <= 0 {
			return fmt.Errorf("starting_weights_deload.%s must be positive", lift.Key())
		}
	}
	return nil
}
