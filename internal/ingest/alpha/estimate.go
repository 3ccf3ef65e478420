package alpha

import (
	"strings"
	"time"

	"github.com/meltforce/liftplan/internal/estimate"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/weights"
)

// maxEstimateReps bounds the sets used for estimates; longer sets say little
// about a single.
const maxEstimateReps = 10

// maxChartRIR is the furthest from failure a set may be to use the RPE chart.
const maxChartRIR = 3.5

var liftAliases = map[string]models.Lift{
	"squat":                 models.Squat,
	"squats":                models.Squat,
	"back squat":            models.Squat,
	"back squats":           models.Squat,
	"barbell squat":         models.Squat,
	"low bar squat":         models.Squat,
	"high bar squat":        models.Squat,
	"bench press":           models.Bench,
	"bench":                 models.Bench,
	"barbell bench press":   models.Bench,
	"flat bench press":      models.Bench,
	"deadlift":              models.Deadlift,
	"deadlifts":             models.Deadlift,
	"conventional deadlift": models.Deadlift,
	"sumo deadlift":         models.Deadlift,
}

// LiftFor maps a logged exercise to a competition lift. Only barbell
// variants (or entries without equipment) count.
func LiftFor(ex Exercise) (models.Lift, bool) {
	if eq := strings.ToLower(ex.Equipment); eq != "" && eq != "barbell" {
		return 0, false
	}
	lift, ok := liftAliases[strings.ToLower(strings.TrimSpace(ex.Name))]
	return lift, ok
}

// Best is the strongest estimate found for one lift.
type Best struct {
	Lift      models.Lift `json:"lift"`
	Date      time.Time   `json:"date"`
	Weight    float64     `json:"weight"`
	Reps      int         `json:"reps"`
	RIR       float64     `json:"rir"`
	OneRepMax float64     `json:"one_rep_max"`
	Rounded   float64     `json:"rounded"`
}

// setEstimate uses the RPE chart when the RIR maps onto it, Epley otherwise.
func setEstimate(s Set) (float64, bool) {
	if s.IsWarmup || s.IsBodyweightPlus || s.WeightKg <= 0 || s.Reps < 1 || s.Reps > maxEstimateReps {
		return 0, false
	}
	if s.RIR >= 0 && s.RIR <= maxChartRIR {
		if v, err := estimate.FromRPE(s.WeightKg, s.Reps, 10-s.RIR); err == nil {
			return v, true
		}
	}
	v, err := estimate.Epley(s.WeightKg, s.Reps)
	return v, err == nil
}

// Estimate returns the best one-rep max estimate per lift across sessions,
// rounded with table. Lifts with no usable sets are absent.
func Estimate(sessions []Session, table *weights.Table) map[models.Lift]Best {
	out := make(map[models.Lift]Best)
	for _, sess := range sessions {
		for _, ex := range sess.Exercises {
			lift, ok := LiftFor(ex)
			if !ok {
				continue
			}
			for _, s := range ex.Sets {
				v, ok := setEstimate(s)
				if !ok {
					continue
				}
				if cur, seen := out[lift]; seen && cur.OneRepMax >= v {
					continue
				}
				out[lift] = Best{
					Lift:      lift,
					Date:      sess.Date,
					Weight:    s.WeightKg,
					Reps:      s.Reps,
					RIR:       s.RIR,
					OneRepMax: v,
					Rounded:   table.Round(v),
				}
			}
		}
	}
	return out
}

// OneRepMax reduces estimates to the rounded maxes a trainee is built from.
func OneRepMax(best map[models.Lift]Best) map[models.Lift]float64 {
	out := make(map[models.Lift]float64, len(best))
	for lift, b := range best {
		out[lift] = b.Rounded
	}
	return out
}
