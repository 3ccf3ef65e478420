package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLift is returned when a lift name is outside the fixed set.
var ErrUnknownLift = errors.New("unknown lift")

// Lift identifies one of the three competition lifts.
type Lift int

const (
	Squat Lift = iota
	Bench
	Deadlift
)

// Lifts is the fixed session order. Per-lift tables are indexed by it.
var Lifts = [3]Lift{Squat, Bench, Deadlift}

// Key returns the lift's configuration key ("squats", "bench", "deadlift").
func (l Lift) Key() string {
	switch l {
	case Squat:
		return "squats"
	case Bench:
		return "bench"
	case Deadlift:
		return "deadlift"
	}
	panic(fmt.Sprintf("models: %v: %d", ErrUnknownLift, int(l)))
}

// Name returns the display name used in session tables.
func (l Lift) Name() string {
	switch l {
	case Squat:
		return "Squats"
	case Bench:
		return "Bench Press"
	case Deadlift:
		return "Deadlift"
	}
	panic(fmt.Sprintf("models: %v: %d", ErrUnknownLift, int(l)))
}

func (l Lift) String() string { return l.Key() }

// Valid reports whether l is one of Squat, Bench or Deadlift.
func (l Lift) Valid() bool {
	return l >= Squat && l <= Deadlift
}

// ParseLift accepts a config key, a display name, or a short alias.
func ParseLift(s string) (Lift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "squats", "squat", "s":
		return Squat, nil
	case "bench", "bench press", "b":
		return Bench, nil
	case "deadlift", "deadlifts", "d":
		return Deadlift, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLift, s)
}

// MarshalText encodes the lift as its config key so maps keyed by Lift
// serialize as {"squats": ...}.
func (l Lift) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLift, int(l))
	}
	return []byte(l.Key()), nil
}

func (l *Lift) UnmarshalText(b []byte) error {
	parsed, err := ParseLift(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Others returns the two lifts other than l, in session order.
func (l Lift) Others() []Lift {
	out := make([]Lift, 0, len(Lifts)-1)
	for _, o := range Lifts {
		if o != l {
			out = append(out, o)
		}
	}
	return out
}
