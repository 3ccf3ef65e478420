package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/storage"
)

// DataSource abstracts the plan layer for MCP tools. Local (in-process) and
// HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Plan(ctx context.Context) (schedule.Info, error)
	ListTrainees(ctx context.Context) ([]storage.Record, error)
	CreateTrainee(ctx context.Context, name string, oneRepMax map[models.Lift]float64) (storage.Record, error)
	Week(ctx context.Context, id uuid.UUID, week models.Week) (schedule.WeekPlan, error)
	Ladders(ctx context.Context, id uuid.UUID, lift models.Lift) (schedule.Ladders, error)
	SetOneRepMax(ctx context.Context, id uuid.UUID, update map[models.Lift]float64) (storage.Record, error)
}

// Local serves tools straight from a plan context and trainee store.
type Local struct {
	plan  *schedule.Context
	store *storage.Memory
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a DataSource backed by in-process state.
func NewLocal(plan *schedule.Context, store *storage.Memory) *Local {
	return &Local{plan: plan, store: store}
}

func (l *Local) Plan(context.Context) (schedule.Info, error) {
	return l.plan.Info(), nil
}

func (l *Local) ListTrainees(ctx context.Context) ([]storage.Record, error) {
	return l.store.List(ctx)
}

func (l *Local) CreateTrainee(ctx context.Context, name string, oneRepMax map[models.Lift]float64) (storage.Record, error) {
	t, err := l.plan.NewTrainee(oneRepMax)
	if err != nil {
		return storage.Record{}, err
	}
	return l.store.Create(ctx, name, t)
}

func (l *Local) Week(ctx context.Context, id uuid.UUID, week models.Week) (schedule.WeekPlan, error) {
	rec, err := l.store.Get(ctx, id)
	if err != nil {
		return schedule.WeekPlan{}, err
	}
	return l.plan.Schedule(rec.Trainee).Plan(week)
}

func (l *Local) Ladders(ctx context.Context, id uuid.UUID, lift models.Lift) (schedule.Ladders, error) {
	rec, err := l.store.Get(ctx, id)
	if err != nil {
		return schedule.Ladders{}, err
	}
	return l.plan.Schedule(rec.Trainee).Ladders(lift)
}

func (l *Local) SetOneRepMax(ctx context.Context, id uuid.UUID, update map[models.Lift]float64) (storage.Record, error) {
	return l.store.Update(ctx, id, func(t schedule.Trainee) (schedule.Trainee, error) {
		return l.plan.WithOneRepMax(t, update)
	})
}
