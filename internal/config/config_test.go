package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/weights"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
tailscale:
  enabled: false
  hostname: "liftplan"
plan:
  weights: "params/weight_manager.json"
  accessory: "params/exercises_acc.json"
  prehab: "params/exercises_prehab.json"
`

const weightsJSON = `{
  "weight_increase": 2.5,
  "prc_squats": [0.7, 0.8, 0.9],
  "prc_bench": [0.85, 0.9, 0.975],
  "prc_deadlift": [0.8, 0.87, 0.95],
  "prc_working": [0.8, 0.85, 0.9],
  "prc_deload": 0.55,
  "starting_weights": {"squats": 20, "bench": 20, "deadlift": 60},
  "starting_weights_deload": {"squats": 20, "bench": 20, "deadlift": 40}
}`

const poolYAML = `
squats: [Leg Press, Lunges]
bench: [Dips]
deadlift: [Good Morning, Back Extension]
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	return writeNamed(t, "config.yaml", content)
}

func writeNamed(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Tailscale.Hostname != "liftplan" {
		t.Errorf("tailscale.hostname = %q, want %q", cfg.Tailscale.Hostname, "liftplan")
	}
	if cfg.Plan.Weights != "params/weight_manager.json" {
		t.Errorf("plan.weights = %q", cfg.Plan.Weights)
	}
	if cfg.Plan.Deload != "" {
		t.Errorf("plan.deload = %q, want empty", cfg.Plan.Deload)
	}
}

// TestEnvOverride verifies that LIFTPLAN_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTPLAN_SERVER_PORT", "9999")
	t.Setenv("LIFTPLAN_TAILSCALE_ENABLED", "true")
	t.Setenv("LIFTPLAN_PLAN_PREHAB", "/etc/liftplan/prehab.yaml")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if !cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = false, want true")
	}
	if cfg.Plan.Prehab != "/etc/liftplan/prehab.yaml" {
		t.Errorf("plan.prehab = %q", cfg.Plan.Prehab)
	}
	// Unchanged fields should keep YAML values
	if cfg.Plan.Accessory != "params/exercises_acc.json" {
		t.Errorf("plan.accessory = %q", cfg.Plan.Accessory)
	}
}

// TestValidationMissingPort verifies that a plain listener needs a port.
func TestValidationMissingPort(t *testing.T) {
	yaml := `
server:
  host: "0.0.0.0"
plan:
  weights: w.json
  accessory: a.json
  prehab: p.json
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

// TestValidationTailscaleWithoutPort verifies a tailnet listener does not
// need server.port.
func TestValidationTailscaleWithoutPort(t *testing.T) {
	yaml := `
tailscale:
  enabled: true
  hostname: liftplan
plan:
  weights: w.json
  accessory: a.json
  prehab: p.json
`
	if _, err := Load(writeTemp(t, yaml)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestValidationMissingPlan verifies that plan files are required.
func TestValidationMissingPlan(t *testing.T) {
	yaml := `
server:
  port: 8080
plan:
  weights: w.json
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing pool paths")
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestLoadTable verifies the JSON weight file matches the built-in table.
func TestLoadTable(t *testing.T) {
	got, err := LoadTable(writeNamed(t, "weights.json", weightsJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(weights.DefaultTable(), got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadTableMismatchedWeeks verifies length mismatches are config errors.
func TestLoadTableMismatchedWeeks(t *testing.T) {
	bad := `
weight_increase: 2.5
prc_squats: [0.7, 0.8]
prc_bench: [0.85, 0.9, 0.975]
prc_deadlift: [0.8, 0.87, 0.95]
prc_working: [0.8, 0.85, 0.9]
prc_deload: 0.55
starting_weights: {squats: 20, bench: 20, deadlift: 60}
starting_weights_deload: {squats: 20, bench: 20, deadlift: 40}
`
	_, err := LoadTable(writeNamed(t, "weights.yaml", bad))
	if !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestLoadTableUnknownLift(t *testing.T) {
	bad := `
weight_increase: 2.5
prc_squats: [0.7]
prc_bench: [0.85]
prc_deadlift: [0.8]
prc_working: [0.8]
prc_deload: 0.55
starting_weights: {squats: 20, bench: 20, deadlift: 60, curls: 10}
starting_weights_deload: {squats: 20, bench: 20, deadlift: 40}
`
	_, err := LoadTable(writeNamed(t, "weights.yaml", bad))
	if !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestLoadTableZeroIncrement(t *testing.T) {
	bad := `
prc_squats: [0.7]
prc_bench: [0.85]
prc_deadlift: [0.8]
prc_working: [0.8]
prc_deload: 0.55
starting_weights: {squats: 20, bench: 20, deadlift: 60}
starting_weights_deload: {squats: 20, bench: 20, deadlift: 40}
`
	if _, err := LoadTable(writeNamed(t, "weights.yaml", bad)); !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestLoadPool(t *testing.T) {
	got, err := LoadPool(writeNamed(t, "acc.yaml", poolYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Dips"}, got[models.Bench]); diff != "" {
		t.Errorf("bench pool mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadPoolEmptyList verifies every lift needs at least one exercise.
func TestLoadPoolEmptyList(t *testing.T) {
	_, err := LoadPool(writeNamed(t, "acc.yaml", "squats: [Leg Press]\nbench: []\ndeadlift: [Good Morning]\n"))
	if !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

// TestLoadPoolDuplicateLift verifies two aliases of one lift are rejected.
func TestLoadPoolDuplicateLift(t *testing.T) {
	_, err := LoadPool(writeNamed(t, "acc.yaml", "squat: [Lunges]\nsquats: [Leg Press]\nbench: [Dips]\ndeadlift: [Good Morning]\n"))
	if !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
	if !strings.Contains(err.Error(), "squats is given more than once") {
		t.Errorf("error = %v", err)
	}

	_, err = LoadTable(writeNamed(t, "plan.yaml", `weight_increase: 2.5
prc_squats: [0.7]
prc_bench: [0.7]
prc_deadlift: [0.7]
prc_working: [0.7]
prc_deload: 0.5
starting_weights: {squats: 20, s: 25, bench: 20, deadlift: 60}
starting_weights_deload: {squats: 20, bench: 20, deadlift: 40}
`))
	if !IsConfigError(err) {
		t.Fatalf("LoadTable error = %v, want ConfigError", err)
	}
}

func TestLoadPoolMalformed(t *testing.T) {
	_, err := LoadPool(writeNamed(t, "acc.yaml", "squats: {nested: true"))
	if !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

// TestLoadDeloadListsPartial verifies lists missing from the file keep the
// built-in content.
func TestLoadDeloadListsPartial(t *testing.T) {
	got, err := LoadDeloadLists(writeNamed(t, "deload.yaml", "upper_body: [Push-Ups, Rows]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Push-Ups", "Rows"}, got.UpperBody); diff != "" {
		t.Errorf("upper body mismatch (-want +got):\n%s", diff)
	}
	if len(got.LowerBody) != 9 {
		t.Errorf("lower body entries = %d, want the 9 built-in", len(got.LowerBody))
	}
}

// TestLoadPlan verifies a complete plan builds a schedule context.
func TestLoadPlan(t *testing.T) {
	plan, err := LoadPlan(PlanConfig{
		Weights:   writeNamed(t, "weights.json", weightsJSON),
		Accessory: writeNamed(t, "acc.yaml", poolYAML),
		Prehab:    writeNamed(t, "prehab.yaml", poolYAML),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, err := plan.Context()
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if ctx.Table().Increment != 2.5 {
		t.Errorf("increment = %v, want 2.5", ctx.Table().Increment)
	}
	if len(ctx.DeloadLists().UpperBody) != 9 {
		t.Errorf("deload lists not defaulted")
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(PlanConfig{
		Weights:   "/nonexistent/weights.json",
		Accessory: "a",
		Prehab:    "p",
	})
	if !IsConfigError(err) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}
