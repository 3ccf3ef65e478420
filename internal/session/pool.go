package session

import (
	"fmt"
	"slices"

	"github.com/meltforce/liftplan/internal/models"
)

// Pool maps each lift slot to its interchangeable exercise names.
type Pool map[models.Lift][]string

// Validate requires a non-empty list for every lift.
func (p Pool) Validate() error {
	for _, lift := range models.Lifts {
		if len(p[lift]) == 0 {
			return fmt.Errorf("%s: exercise list is empty", lift.Key())
		}
	}
	return nil
}

// Pools bundles the accessory and prehab pools.
type Pools struct {
	Accessory Pool `json:"accessory"`
	Prehab    Pool `json:"prehab"`
}

// DeloadLists are the fixed exercise lists used during the deload week.
type DeloadLists struct {
	FullBodyPrehab []string `yaml:"full_body_prehab" json:"full_body_prehab"`
	UpperBody      []string `yaml:"upper_body" json:"upper_body"`
	LowerBody      []string `yaml:"lower_body" json:"lower_body"`
}

// DefaultDeloadLists returns the stock deload content.
func DefaultDeloadLists() DeloadLists {
	return DeloadLists{
		FullBodyPrehab: []string{
			"Hip exercises (variations)",
			"Scapular Retraction",
			"Band Pull-Aparts",
		},
		UpperBody: []string{
			"Prone YTI Raises",
			"Reverse Prayer Hands",
			"Jefferson Curls",
			"Side Lateral Shoulder Raises",
			"Triceps Pushdowns",
			"Lat Pulldowns",
			"Rows",
			"Machine Reverse Fly",
			"Bicep curls",
		},
		LowerBody: []string{
			"Deadbugs",
			"Fire Hydrant",
			"Glute Bridges (variations)",
			"Clamshells",
			"Bird Dog",
			"Kettlebell Swings",
			"Calf Raises",
			"Kickbacks",
			"Leg Extension",
		},
	}
}

// defaultPrehabPicks is how many prehab entries are selected by default.
const defaultPrehabPicks = 2

// Selection is the trainee's choice of accessory and prehab exercises per
// lift slot.
type Selection struct {
	Accessory map[models.Lift]string   `json:"accessory"`
	Prehab    map[models.Lift][]string `json:"prehab"`
}

// DefaultSelection picks the first accessory and the first two prehab
// exercises for every slot.
func DefaultSelection(p Pools) Selection {
	s := Selection{
		Accessory: make(map[models.Lift]string, len(models.Lifts)),
		Prehab:    make(map[models.Lift][]string, len(models.Lifts)),
	}
	for _, lift := range models.Lifts {
		if acc := p.Accessory[lift]; len(acc) > 0 {
			s.Accessory[lift] = acc[0]
		}
		pre := p.Prehab[lift]
		s.Prehab[lift] = slices.Clone(pre[:min(defaultPrehabPicks, len(pre))])
	}
	return s
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	out := Selection{
		Accessory: make(map[models.Lift]string, len(s.Accessory)),
		Prehab:    make(map[models.Lift][]string, len(s.Prehab)),
	}
	for k, v := range s.Accessory {
		out.Accessory[k] = v
	}
	for k, v := range s.Prehab {
		out.Prehab[k] = slices.Clone(v)
	}
	return out
}

// Validate checks every chosen name belongs to that lift's pool. A prehab
// choice must name at least one exercise.
func (s Selection) Validate(p Pools) error {
	for lift, name := range s.Accessory {
		if !lift.Valid() {
			return fmt.Errorf("%w: %d", models.ErrUnknownLift, int(lift))
		}
		if !slices.Contains(p.Accessory[lift], name) {
			return fmt.Errorf("accessory %q is not in the %s pool", name, lift.Key())
		}
	}
	for lift, names := range s.Prehab {
		if !lift.Valid() {
			return fmt.Errorf("%w: %d", models.ErrUnknownLift, int(lift))
		}
		if len(names) == 0 {
			return fmt.Errorf("prehab for %s is empty", lift.Key())
		}
		for _, name := range names {
			if !slices.Contains(p.Prehab[lift], name) {
				return fmt.Errorf("prehab %q is not in the %s pool", name, lift.Key())
			}
		}
	}
	return nil
}
