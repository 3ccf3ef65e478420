package schedule

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/session"
)

// ErrInvalidInput marks a rejected user update. The previous state is kept.
var ErrInvalidInput = errors.New("invalid input")

// startingStep is the granularity of user-supplied starting weights.
const startingStep = 10.0

// Trainee holds the mutable inputs of one person. Values are replaced, never
// modified in place, so a Trainee can be shared as a snapshot.
type Trainee struct {
	OneRepMax       map[models.Lift]float64 `json:"one_rep_max"`
	StartingWeights map[models.Lift]float64 `json:"starting_weights"`
	Selection       session.Selection       `json:"selection"`
}

// NewTrainee validates maxes and fills starting weights and selection from
// the context defaults.
func (c *Context) NewTrainee(oneRepMax map[models.Lift]float64) (Trainee, error) {
	for _, lift := range models.Lifts {
		if _, ok := oneRepMax[lift]; !ok {
			return Trainee{}, fmt.Errorf("%w: one-rep max for %s is required", ErrInvalidInput, lift.Key())
		}
	}
	if err := c.checkOneRepMax(oneRepMax); err != nil {
		return Trainee{}, err
	}
	return Trainee{
		OneRepMax:       maps.Clone(oneRepMax),
		StartingWeights: maps.Clone(c.table.StartingWeights),
		Selection:       session.DefaultSelection(c.pools),
	}, nil
}

// WithOneRepMax returns a copy of t with the given maxes replaced. Nothing is
// applied unless every value is valid.
func (c *Context) WithOneRepMax(t Trainee, update map[models.Lift]float64) (Trainee, error) {
	if err := c.checkOneRepMax(update); err != nil {
		return t, err
	}
	out := t.clone()
	maps.Copy(out.OneRepMax, update)
	return out, nil
}

// WithStartingWeights returns a copy of t with the given starting weights
// replaced.
func (c *Context) WithStartingWeights(t Trainee, update map[models.Lift]float64) (Trainee, error) {
	for lift, v := range update {
		if !lift.Valid() {
			return t, fmt.Errorf("%w: %w", ErrInvalidInput, models.ErrUnknownLift)
		}
		if v <= 0 {
			return t, fmt.Errorf("%w: starting weight for %s must be positive, got %v", ErrInvalidInput, lift.Key(), v)
		}
		if !onStep(v, startingStep) {
			return t, fmt.Errorf("%w: starting weight for %s must be a multiple of %v, got %v", ErrInvalidInput, lift.Key(), startingStep, v)
		}
	}
	out := t.clone()
	maps.Copy(out.StartingWeights, update)
	return out, nil
}

// WithSelection returns a copy of t using the given accessory and prehab
// choices. Slots missing from sel keep their current choice.
func (c *Context) WithSelection(t Trainee, sel session.Selection) (Trainee, error) {
	if err := sel.Validate(c.pools); err != nil {
		return t, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	out := t.clone()
	for lift, name := range sel.Accessory {
		out.Selection.Accessory[lift] = name
	}
	for lift, names := range sel.Prehab {
		out.Selection.Prehab[lift] = append([]string(nil), names...)
	}
	return out, nil
}

func (c *Context) checkOneRepMax(m map[models.Lift]float64) error {
	for lift, v := range m {
		if !lift.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidInput, models.ErrUnknownLift)
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: one-rep max for %s must be positive, got %v", ErrInvalidInput, lift.Key(), v)
		}
		if !onStep(v, c.table.Increment) {
			return fmt.Errorf("%w: one-rep max for %s must be a multiple of %v, got %v", ErrInvalidInput, lift.Key(), c.table.Increment, v)
		}
	}
	return nil
}

func (t Trainee) clone() Trainee {
	out := Trainee{
		OneRepMax:       make(map[models.Lift]float64, len(models.Lifts)),
		StartingWeights: make(map[models.Lift]float64, len(models.Lifts)),
		Selection:       t.Selection.Clone(),
	}
	maps.Copy(out.OneRepMax, t.OneRepMax)
	maps.Copy(out.StartingWeights, t.StartingWeights)
	return out
}

func onStep(v, step float64) bool {
	const eps = 1e-9
	r := math.Mod(v, step)
	return r < eps || step-r < eps
}
