package schedule

import (
	"fmt"
	"math"
	"strconv"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/session"
	"github.com/meltforce/liftplan/internal/weights"
)

// Schedule answers week queries for one trainee snapshot. Build a new one
// whenever the trainee changes; it holds no hidden counters, so repeated
// queries return identical output.
type Schedule struct {
	ctx       *Context
	calc      *weights.Calculator
	selection session.Selection
}

// Schedule builds the facade for t.
func (c *Context) Schedule(t Trainee) *Schedule {
	return &Schedule{
		ctx:       c,
		calc:      weights.NewCalculator(c.table, t.OneRepMax, t.StartingWeights, c.steps()),
		selection: t.Selection.Clone(),
	}
}

// Month is every week of the mesocycle, in order.
type Month struct {
	Weeks []WeekPlan `json:"weeks"`
}

// WeekPlan is one week's header and its three sessions in slot order.
type WeekPlan struct {
	Week     models.Week        `json:"week"`
	Phase    string             `json:"phase"`
	Header   string             `json:"header"`
	Sessions [3]session.Session `json:"sessions"`
}

// Week returns the three sessions of w: squat, bench and deadlift days for
// weeks 1-3, full body, upper body and lower body for the deload week.
func (s *Schedule) Week(w models.Week) ([3]session.Session, error) {
	if !w.Valid() {
		return [3]session.Session{}, fmt.Errorf("%w: %d", models.ErrUnknownWeek, int(w))
	}
	return s.planner(w).Sessions(), nil
}

func (s *Schedule) WeekOne() [3]session.Session   { return s.planner(models.Week1).Sessions() }
func (s *Schedule) WeekTwo() [3]session.Session   { return s.planner(models.Week2).Sessions() }
func (s *Schedule) WeekThree() [3]session.Session { return s.planner(models.Week3).Sessions() }
func (s *Schedule) WeekFour() [3]session.Session  { return s.planner(models.Week4).Sessions() }

// Plan returns the week with its header.
func (s *Schedule) Plan(w models.Week) (WeekPlan, error) {
	sessions, err := s.Week(w)
	if err != nil {
		return WeekPlan{}, err
	}
	return WeekPlan{Week: w, Phase: w.Phase(), Header: s.Header(w), Sessions: sessions}, nil
}

// Month returns all four weeks.
func (s *Schedule) Month() Month {
	m := Month{Weeks: make([]WeekPlan, 0, len(models.Weeks))}
	for _, w := range models.Weeks {
		p, _ := s.Plan(w)
		m.Weeks = append(m.Weeks, p)
	}
	return m
}

// Header is the week title, e.g. "Week 1: Accumulation (70%)". The
// intensity is the squat percentage, or the deload percentage in week 4.
func (s *Schedule) Header(w models.Week) string {
	var pct float64
	if w.IsDeload() {
		pct = s.ctx.table.Deload
	} else {
		pct = s.ctx.table.Percentages[models.Squat][w.Index()]
	}
	return fmt.Sprintf("%s: %s (%s%%)", w, w.Phase(), formatPercent(pct))
}

// SetOneRepMax updates one lift in place, recomputing only that lift.
func (s *Schedule) SetOneRepMax(lift models.Lift, v float64) error {
	if err := s.ctx.checkOneRepMax(map[models.Lift]float64{lift: v}); err != nil {
		return err
	}
	s.calc.SetOneRepMax(lift, v)
	return nil
}

// Ladders is everything derived for one lift.
type Ladders struct {
	Lift      models.Lift      `json:"lift"`
	OneRepMax float64          `json:"one_rep_max"`
	Top       []float64        `json:"top"`
	Working   []float64        `json:"working"`
	Main      []weights.Ladder `json:"main"`
	Secondary []weights.Ladder `json:"secondary"`
	Deload    weights.Ladder   `json:"deload"`
}

// Ladders returns the weight tables for lift.
func (s *Schedule) Ladders(lift models.Lift) (Ladders, error) {
	if !lift.Valid() {
		return Ladders{}, fmt.Errorf("%w: %d", models.ErrUnknownLift, int(lift))
	}
	return Ladders{
		Lift:      lift,
		OneRepMax: s.calc.OneRepMax(lift),
		Top:       s.calc.Top(lift),
		Working:   s.calc.Working(lift),
		Main:      s.calc.Weights(lift, true),
		Secondary: s.calc.Weights(lift, false),
		Deload:    s.calc.Deload(lift),
	}, nil
}

func (s *Schedule) planner(w models.Week) *session.Planner {
	return &session.Planner{
		Week:      w,
		Profile:   s.ctx.profile(w),
		Calc:      s.calc,
		Selection: s.selection,
		Secondary: s.ctx.secondary,
		Deload:    s.ctx.deload,
	}
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*1000)/10, 'f', -1, 64)
}
