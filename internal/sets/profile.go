package sets

import "github.com/meltforce/liftplan/internal/models"

// WeekReps holds the working rep targets for one non-deload week.
type WeekReps struct {
	Main      int `yaml:"main" json:"main"`
	Accessory int `yaml:"accessory" json:"accessory"`
}

// DefaultWeekReps is 8/5/2 for main lifts and 6/4/1 for accessories across
// accumulation, intensification and peaking.
var DefaultWeekReps = []WeekReps{
	{Main: 8, Accessory: 6},
	{Main: 5, Accessory: 4},
	{Main: 2, Accessory: 1},
}

// DefaultPrehabReps is the working rep count for prehab blocks.
const DefaultPrehabReps = 8

// Main is the main-lift block: bar, three warm-ups down to a single, then
// three working sets.
func Main(reps int) Params {
	return Params{WarmupSets: 3, WorkingSets: 3, EndingReps: 1, MaxReps: reps, StartWithBar: true}
}

// Accessory is the lighter block used for secondary lifts and accessories.
func Accessory(reps int, withBar bool) Params {
	return Params{WarmupSets: 2, WorkingSets: 3, EndingReps: 2, MaxReps: reps, StartWithBar: withBar}
}

// Prehab has no warm-ups.
func Prehab(reps int) Params {
	return Params{WarmupSets: 0, WorkingSets: 3, EndingReps: 0, MaxReps: reps}
}

// Deload is 2x5 after one set at the deload starting weight.
func Deload() Params {
	return Params{WarmupSets: 0, WorkingSets: 2, EndingReps: 5, MaxReps: 5, StartWithBar: true}
}

// RepsFor returns the rep targets for a non-deload week, panicking on an
// out-of-range week.
func RepsFor(reps []WeekReps, w models.Week) WeekReps {
	if !w.Valid() || w.IsDeload() || w.Index() >= len(reps) {
		panic("sets: " + models.ErrUnknownWeek.Error() + ": " + w.String())
	}
	return reps[w.Index()]
}
