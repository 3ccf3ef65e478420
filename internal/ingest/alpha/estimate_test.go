package alpha

import (
	"math"
	"strings"
	"testing"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/weights"
)

const liftsCSV = `"Lower";"2026-03-02 18:10 h";"0:55 hr"
"1. Squat · Barbell · 5 reps";"WU1 · 60 kg · 5 reps"
#;KG;REPS;RIR
1;100;5;2
2;105;3;1
"2. Hack Squats · Machine · 8 reps"
#;KG;REPS;RIR
1;180;8;0
"3. Deadlift · Barbell · 5 reps"
#;KG;REPS;RIR
1;140;5;5
2;120;12;0
`

// TestLiftFor verifies only barbell competition lifts are matched.
func TestLiftFor(t *testing.T) {
	tests := []struct {
		name, equipment string
		want            models.Lift
		ok              bool
	}{
		{"Squat", "Barbell", models.Squat, true},
		{"Back Squats", "", models.Squat, true},
		{"Bench Press", "Barbell", models.Bench, true},
		{"Sumo Deadlift", "barbell", models.Deadlift, true},
		{"Hack Squats", "Machine", 0, false},
		{"Bench Press", "Dumbbells", 0, false},
		{"Romanian Deadlift", "Barbell", 0, false},
	}
	for _, tt := range tests {
		got, ok := LiftFor(Exercise{Name: tt.name, Equipment: tt.equipment})
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LiftFor(%q, %q) = %v, %v; want %v, %v", tt.name, tt.equipment, got, ok, tt.want, tt.ok)
		}
	}
}

// TestEstimateBench verifies the bench estimate from the sample export uses
// the RPE chart at RIR 0.
func TestEstimateBench(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	best := Estimate(sessions, weights.DefaultTable())
	if len(best) != 1 {
		t.Fatalf("lifts = %d, want only bench", len(best))
	}
	b := best[models.Bench]
	if b.Weight != 102.5 || b.Reps != 6 {
		t.Errorf("best set = %vx%d, want 102.5x6", b.Weight, b.Reps)
	}
	if want := 102.5 / 0.837; math.Abs(b.OneRepMax-want) > 1e-9 {
		t.Errorf("one rep max = %v, want %v", b.OneRepMax, want)
	}
	if b.Rounded != 122.5 {
		t.Errorf("rounded = %v, want 122.5", b.Rounded)
	}
}

// TestEstimateSkipsUnusableSets verifies warm-ups, machine work and long
// sets are ignored and far-from-failure sets fall back to Epley.
func TestEstimateSkipsUnusableSets(t *testing.T) {
	sessions, err := Parse(strings.NewReader(liftsCSV))
	if err != nil {
		t.Fatal(err)
	}
	best := Estimate(sessions, weights.DefaultTable())

	sq := best[models.Squat]
	if sq.Weight != 100 || sq.Reps != 5 {
		t.Errorf("squat best set = %vx%d, want 100x5", sq.Weight, sq.Reps)
	}
	if want := 100 / 0.811; math.Abs(sq.OneRepMax-want) > 1e-9 {
		t.Errorf("squat = %v, want %v", sq.OneRepMax, want)
	}

	dl := best[models.Deadlift]
	if dl.Weight != 140 {
		t.Errorf("deadlift best weight = %v, want 140", dl.Weight)
	}
	if want := 140 * (1 + 5.0/30); math.Abs(dl.OneRepMax-want) > 1e-9 {
		t.Errorf("deadlift = %v, want Epley %v", dl.OneRepMax, want)
	}

	maxes := OneRepMax(best)
	if maxes[models.Squat] != 122.5 {
		t.Errorf("squat rounded = %v, want 122.5", maxes[models.Squat])
	}
	if _, ok := maxes[models.Bench]; ok {
		t.Error("bench should be absent")
	}
}
