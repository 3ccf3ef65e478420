package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Plan      PlanConfig      `yaml:"plan"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// PlanConfig points at the static plan files read once at startup.
type PlanConfig struct {
	Weights   string `yaml:"weights"`
	Accessory string `yaml:"accessory"`
	Prehab    string `yaml:"prehab"`
	Deload    string `yaml:"deload"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix LIFTPLAN_ and underscore-separated paths:
//
//	LIFTPLAN_SERVER_HOST, LIFTPLAN_SERVER_PORT,
//	LIFTPLAN_TAILSCALE_ENABLED, LIFTPLAN_TAILSCALE_HOSTNAME, LIFTPLAN_TAILSCALE_STATE_DIR,
//	LIFTPLAN_PLAN_WEIGHTS, LIFTPLAN_PLAN_ACCESSORY, LIFTPLAN_PLAN_PREHAB, LIFTPLAN_PLAN_DELOAD
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTPLAN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTPLAN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTPLAN_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("LIFTPLAN_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("LIFTPLAN_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("LIFTPLAN_PLAN_WEIGHTS"); v != "" {
		cfg.Plan.Weights = v
	}
	if v := os.Getenv("LIFTPLAN_PLAN_ACCESSORY"); v != "" {
		cfg.Plan.Accessory = v
	}
	if v := os.Getenv("LIFTPLAN_PLAN_PREHAB"); v != "" {
		cfg.Plan.Prehab = v
	}
	if v := os.Getenv("LIFTPLAN_PLAN_DELOAD"); v != "" {
		cfg.Plan.Deload = v
	}
}

func (c *Config) validate() error {
	if c.Tailscale.Enabled {
		if c.Tailscale.Hostname == "" {
			return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
		}
	} else if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Plan.Weights == "" {
		return fmt.Errorf("plan.weights is required")
	}
	if c.Plan.Accessory == "" {
		return fmt.Errorf("plan.accessory is required")
	}
	if c.Plan.Prehab == "" {
		return fmt.Errorf("plan.prehab is required")
	}
	return nil
}
