package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/session"
	"github.com/meltforce/liftplan/internal/weights"
	"gopkg.in/yaml.v3"
)

// ConfigError reports a plan file that is missing, malformed or fails
// validation.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "plan config: " + e.Err.Error()
	}
	return fmt.Sprintf("plan config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err came from plan loading.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Plan is the static training configuration: the percentage table, the
// exercise pools and the deload lists.
type Plan struct {
	Table  *weights.Table
	Pools  session.Pools
	Deload session.DeloadLists
}

// weightsFile mirrors the on-disk percentage table. Lift-keyed maps use the
// config keys squats, bench and deadlift.
type weightsFile struct {
	WeightIncrease        float64            `yaml:"weight_increase"`
	PrcSquats             []float64          `yaml:"prc_squats"`
	PrcBench              []float64          `yaml:"prc_bench"`
	PrcDeadlift           []float64          `yaml:"prc_deadlift"`
	PrcWorking            []float64          `yaml:"prc_working"`
	PrcDeload             float64            `yaml:"prc_deload"`
	StartingWeights       map[string]float64 `yaml:"starting_weights"`
	StartingWeightsDeload map[string]float64 `yaml:"starting_weights_deload"`
}

// LoadPlan reads every file named in pc. The deload file is optional; the
// built-in lists are used when it is empty. Files may be YAML or JSON.
func LoadPlan(pc PlanConfig) (*Plan, error) {
	table, err := LoadTable(pc.Weights)
	if err != nil {
		return nil, err
	}
	acc, err := LoadPool(pc.Accessory)
	if err != nil {
		return nil, err
	}
	pre, err := LoadPool(pc.Prehab)
	if err != nil {
		return nil, err
	}
	deload := session.DefaultDeloadLists()
	if pc.Deload != "" {
		if deload, err = LoadDeloadLists(pc.Deload); err != nil {
			return nil, err
		}
	}
	return &Plan{
		Table:  table,
		Pools:  session.Pools{Accessory: acc, Prehab: pre},
		Deload: deload,
	}, nil
}

// Context builds the shared schedule context from the plan.
func (p *Plan) Context(opts ...schedule.Option) (*schedule.Context, error) {
	opts = append([]schedule.Option{schedule.WithDeloadLists(p.Deload)}, opts...)
	c, err := schedule.NewContext(p.Table, p.Pools, opts...)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return c, nil
}

// LoadTable reads and validates the percentage table.
func LoadTable(path string) (*weights.Table, error) {
	var f weightsFile
	if err := readFile(path, &f); err != nil {
		return nil, err
	}
	start, err := liftMap(f.StartingWeights)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("starting_weights: %w", err)}
	}
	deloadStart, err := liftMap(f.StartingWeightsDeload)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("starting_weights_deload: %w", err)}
	}
	t := &weights.Table{
		Increment: f.WeightIncrease,
		Percentages: map[models.Lift][]float64{
			models.Squat:    f.PrcSquats,
			models.Bench:    f.PrcBench,
			models.Deadlift: f.PrcDeadlift,
		},
		Working:               f.PrcWorking,
		Deload:                f.PrcDeload,
		StartingWeights:       start,
		DeloadStartingWeights: deloadStart,
	}
	for _, lift := range models.Lifts {
		if t.Percentages[lift] == nil {
			delete(t.Percentages, lift)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return t, nil
}

// LoadPool reads an exercise pool keyed by lift.
func LoadPool(path string) (session.Pool, error) {
	var raw map[string][]string
	if err := readFile(path, &raw); err != nil {
		return nil, err
	}
	pool, err := liftMap(raw)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	p := session.Pool(pool)
	if err := p.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return p, nil
}

// LoadDeloadLists reads the deload-week exercise lists. Lists left out of
// the file keep their built-in content.
func LoadDeloadLists(path string) (session.DeloadLists, error) {
	d := session.DefaultDeloadLists()
	if err := readFile(path, &d); err != nil {
		return session.DeloadLists{}, err
	}
	return d, nil
}

func readFile(path string, v any) error {
	if path == "" {
		return &ConfigError{Err: errors.New("file path is empty")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// liftMap rekeys raw by lift. Two keys naming the same lift (squat and
// squats) are rejected.
func liftMap[V any](raw map[string]V) (map[models.Lift]V, error) {
	out := make(map[models.Lift]V, len(raw))
	for k, v := range raw {
		lift, err := models.ParseLift(k)
		if err != nil {
			return nil, err
		}
		if _, dup := out[lift]; dup {
			return nil, fmt.Errorf("%s is given more than once", lift.Key())
		}
		out[lift] = v
	}
	return out, nil
}
