// Package storage keeps per-trainee state for the lifetime of the process.
package storage

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/schedule"
)

// ErrNotFound is returned for an unknown trainee id.
var ErrNotFound = errors.New("trainee not found")

// Record is a stored trainee. The Trainee value is a snapshot and must not
// be modified by callers.
type Record struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Trainee   schedule.Trainee `json:"trainee"`
}

// Memory is an in-process trainee store safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	trainees map[uuid.UUID]Record
	now      func() time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{trainees: make(map[uuid.UUID]Record), now: time.Now}
}

// Create stores t under a fresh id.
func (m *Memory) Create(ctx context.Context, name string, t schedule.Trainee) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	now := m.now().UTC()
	rec := Record{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now, Trainee: t}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainees[rec.ID] = rec
	return rec, nil
}

// Get returns the current snapshot for id.
func (m *Memory) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.trainees[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Update applies fn to the stored trainee under the write lock. When fn
// returns an error nothing is stored and the error is passed through.
func (m *Memory) Update(ctx context.Context, id uuid.UUID, fn func(schedule.Trainee) (schedule.Trainee, error)) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.trainees[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	next, err := fn(rec.Trainee)
	if err != nil {
		return rec, err
	}
	rec.Trainee = next
	rec.UpdatedAt = m.now().UTC()
	m.trainees[id] = rec
	return rec, nil
}

// Delete removes id.
func (m *Memory) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trainees[id]; !ok {
		return ErrNotFound
	}
	delete(m.trainees, id)
	return nil
}

// List returns all records, oldest first.
func (m *Memory) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Record, 0, len(m.trainees))
	for _, rec := range m.trainees {
		out = append(out, rec)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}
