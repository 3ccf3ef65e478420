package session

import (
	"strings"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/sets"
	"github.com/meltforce/liftplan/internal/weights"
)

// Kind selects which variant a Profile describes.
type Kind int

const (
	KindMainWeek Kind = iota
	KindDeload
)

// Profile is the set-scheme capability of a week. Deload profiles only use
// Deload and Prehab.
type Profile struct {
	Kind      Kind
	Main      sets.Scheme
	Secondary sets.Scheme
	Accessory sets.Scheme
	Prehab    sets.Scheme
	Deload    sets.Scheme
}

// MainWeekProfile builds the schemes for an accumulation, intensification or
// peaking week.
func MainWeekProfile(reps sets.WeekReps, prehabReps int) Profile {
	return Profile{
		Kind:      KindMainWeek,
		Main:      sets.Generate(sets.Main(reps.Main)),
		Secondary: sets.Generate(sets.Accessory(reps.Accessory, true)),
		Accessory: sets.Generate(sets.Accessory(reps.Accessory, false)),
		Prehab:    sets.Generate(sets.Prehab(prehabReps)),
	}
}

// DeloadProfile builds the schemes for the recovery week.
func DeloadProfile(prehabReps int) Profile {
	return Profile{
		Kind:   KindDeload,
		Deload: sets.Generate(sets.Deload()),
		Prehab: sets.Generate(sets.Prehab(prehabReps)),
	}
}

// Steps returns the ramp lengths implied by the profile's schemes: one rung
// per descriptor except the working one.
func (p Profile) Steps() weights.Steps {
	return weights.Steps{Main: max(len(p.Main)-1, 0), Secondary: max(len(p.Secondary)-1, 0)}
}

var mainHeaders = map[models.Lift]string{
	models.Squat:    "Squats session",
	models.Bench:    "Bench session",
	models.Deadlift: "Deadlift session",
}

var deloadHeaders = map[models.Lift]string{
	models.Squat:    "Full body session",
	models.Bench:    "Upper body session",
	models.Deadlift: "Lower body session",
}

// DefaultSecondary rotates each main lift to the next one in session order.
var DefaultSecondary = map[models.Lift]models.Lift{
	models.Squat:    models.Bench,
	models.Bench:    models.Deadlift,
	models.Deadlift: models.Squat,
}

// Planner composes sessions for one week.
type Planner struct {
	Week      models.Week
	Profile   Profile
	Calc      *weights.Calculator
	Selection Selection
	Secondary map[models.Lift]models.Lift
	Deload    DeloadLists
}

// Generate builds the session in the given lift slot. For the deload week
// the slots map to full body, upper body and lower body.
func (p *Planner) Generate(slot models.Lift) Session {
	if !slot.Valid() {
		panic("session: " + models.ErrUnknownLift.Error())
	}
	if p.Profile.Kind == KindDeload {
		switch slot {
		case models.Squat:
			return p.FullBody()
		case models.Bench:
			return p.UpperBody()
		default:
			return p.LowerBody()
		}
	}
	return p.mainSession(slot)
}

// Sessions returns the three sessions of the week in slot order.
func (p *Planner) Sessions() [3]Session {
	var out [3]Session
	for i, lift := range models.Lifts {
		out[i] = p.Generate(lift)
	}
	return out
}

func (p *Planner) mainSession(lift models.Lift) Session {
	if !p.Week.Valid() || p.Week.IsDeload() {
		panic("session: " + models.ErrUnknownWeek.Error() + ": main session in " + p.Week.String())
	}
	idx := p.Week.Index()
	s := Session{Header: mainHeaders[lift]}

	s.Rows = append(s.Rows, pair(SectionMain, lift, p.Profile.Main, p.Calc.Weights(lift, true)[idx])...)

	if sec, ok := p.Secondary[lift]; ok && sec != lift && len(p.Profile.Secondary) > 0 {
		s.Rows = append(s.Rows, pair(SectionSecondary, sec, p.Profile.Secondary, p.Calc.Weights(sec, false)[idx])...)
	}

	accScheme := p.Profile.Accessory.String()
	for _, other := range lift.Others() {
		name, ok := p.Selection.Accessory[other]
		if !ok || name == "" {
			continue
		}
		s.Rows = append(s.Rows, unweighted(SectionAccessory, name, accScheme))
	}

	if names := p.Selection.Prehab[lift]; len(names) > 0 {
		s.Rows = append(s.Rows, unweighted(SectionPrehab, strings.Join(names, ", "), p.Profile.Prehab.String()))
	}
	return s
}

// FullBody is the deload session covering all three lifts at the deload
// weight, followed by the full-body prehab list.
func (p *Planner) FullBody() Session {
	s := Session{Header: deloadHeaders[models.Squat]}
	for _, lift := range models.Lifts {
		s.Rows = append(s.Rows, pair(SectionDeload, lift, p.Profile.Deload, p.Calc.Deload(lift))...)
	}
	s.Rows = append(s.Rows, p.prehabRows(p.Deload.FullBodyPrehab)...)
	return s
}

// UpperBody is a bodyweight and light accessory session without loads.
func (p *Planner) UpperBody() Session {
	return Session{Header: deloadHeaders[models.Bench], Rows: p.prehabRows(p.Deload.UpperBody)}
}

// LowerBody is a bodyweight and light accessory session without loads.
func (p *Planner) LowerBody() Session {
	return Session{Header: deloadHeaders[models.Deadlift], Rows: p.prehabRows(p.Deload.LowerBody)}
}

func (p *Planner) prehabRows(names []string) []Row {
	scheme := p.Profile.Prehab.String()
	rows := make([]Row, 0, len(names))
	for _, n := range names {
		rows = append(rows, unweighted(SectionPrehab, n, scheme))
	}
	return rows
}
