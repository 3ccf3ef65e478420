// Package schedule is the month-level facade over the weight and session
// engines.
package schedule

import (
	"fmt"
	"maps"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/session"
	"github.com/meltforce/liftplan/internal/sets"
	"github.com/meltforce/liftplan/internal/weights"
)

// mainWeeks is the number of non-deload weeks in the mesocycle.
const mainWeeks = 3

// Context is the validated, read-only configuration every schedule is built
// from. One Context is shared by all trainees.
type Context struct {
	table      *weights.Table
	pools      session.Pools
	deload     session.DeloadLists
	weekReps   []sets.WeekReps
	prehabReps int
	secondary  map[models.Lift]models.Lift
}

// Option customises a Context.
type Option func(*Context)

// WithDeloadLists overrides the deload-week exercise lists.
func WithDeloadLists(d session.DeloadLists) Option {
	return func(c *Context) { c.deload = d }
}

// WithWeekReps overrides the per-week working rep targets.
func WithWeekReps(r []sets.WeekReps) Option {
	return func(c *Context) { c.weekReps = r }
}

// WithPrehabReps overrides the prehab working reps.
func WithPrehabReps(n int) Option {
	return func(c *Context) { c.prehabReps = n }
}

// WithSecondary overrides which lift is trained as the secondary lift on each
// main-lift day.
func WithSecondary(m map[models.Lift]models.Lift) Option {
	return func(c *Context) { c.secondary = m }
}

// NewContext validates the table and pools and applies options.
func NewContext(table *weights.Table, pools session.Pools, opts ...Option) (*Context, error) {
	c := &Context{
		table:      table,
		pools:      pools,
		deload:     session.DefaultDeloadLists(),
		weekReps:   sets.DefaultWeekReps,
		prehabReps: sets.DefaultPrehabReps,
		secondary:  maps.Clone(session.DefaultSecondary),
	}
	for _, opt := range opts {
		opt(c)
	}

	if table == nil {
		return nil, fmt.Errorf("percentage table is required")
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("percentage table: %w", err)
	}
	if table.Weeks() != mainWeeks {
		return nil, fmt.Errorf("percentage table: need %d weeks before the deload, got %d", mainWeeks, table.Weeks())
	}
	if err := pools.Accessory.Validate(); err != nil {
		return nil, fmt.Errorf("accessory pool: %w", err)
	}
	if err := pools.Prehab.Validate(); err != nil {
		return nil, fmt.Errorf("prehab pool: %w", err)
	}
	if len(c.weekReps) != mainWeeks {
		return nil, fmt.Errorf("week reps: need %d weeks, got %d", mainWeeks, len(c.weekReps))
	}
	for i, r := range c.weekReps {
		if r.Main <= 0 || r.Accessory <= 0 {
			return nil, fmt.Errorf("week reps[%d]: reps must be positive", i)
		}
	}
	if c.prehabReps <= 0 {
		return nil, fmt.Errorf("prehab reps must be positive")
	}
	for main, sec := range c.secondary {
		if !main.Valid() || !sec.Valid() {
			return nil, fmt.Errorf("secondary lifts: %w", models.ErrUnknownLift)
		}
	}
	return c, nil
}

// Table returns the percentage table. Callers must not modify it.
func (c *Context) Table() *weights.Table { return c.table }

// Pools returns the exercise pools. Callers must not modify them.
func (c *Context) Pools() session.Pools { return c.pools }

// DeloadLists returns the deload-week exercise lists.
func (c *Context) DeloadLists() session.DeloadLists { return c.deload }

// Info is the JSON view of the loaded configuration.
type Info struct {
	Table  *weights.Table      `json:"table"`
	Pools  session.Pools       `json:"pools"`
	Deload session.DeloadLists `json:"deload"`
}

// Info returns the configuration for display.
func (c *Context) Info() Info {
	return Info{Table: c.table, Pools: c.pools, Deload: c.deload}
}

// profile resolves a week to its set-scheme profile.
func (c *Context) profile(w models.Week) session.Profile {
	if w.IsDeload() {
		return session.DeloadProfile(c.prehabReps)
	}
	return session.MainWeekProfile(sets.RepsFor(c.weekReps, w), c.prehabReps)
}

// steps is the same for every main week since only rep targets vary.
func (c *Context) steps() weights.Steps {
	return c.profile(models.Week1).Steps()
}
