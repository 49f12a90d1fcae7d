// Package config reads the server configuration from environment variables
// and command-line flags. Environment variables win over flags.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server parameters.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR"`
	// DBPath is the SQLite database path; ":memory:" for in-memory.
	DBPath string `env:"DB_PATH"`
	// GoalPreset selects the goal-estimation constant set: "standard"
	// (20 business days per month) or "long" (22).
	GoalPreset string `env:"GOAL_PRESET"`
}

// Parse reads configuration from flags and the environment.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envAddr := cfg.Addr
	envDBPath := cfg.DBPath
	envPreset := cfg.GoalPreset

	flag.StringVar(&cfg.Addr, "addr", ":8080", "HTTP listen address")
	flag.StringVar(&cfg.DBPath, "db", "sales.db", "SQLite database path")
	flag.StringVar(&cfg.GoalPreset, "goal-preset", "standard", "goal estimation preset (standard|long)")

	flag.Parse()

	if envAddr != "" {
		cfg.Addr = envAddr
	}
	if envDBPath != "" {
		cfg.DBPath = envDBPath
	}
	if envPreset != "" {
		cfg.GoalPreset = envPreset
	}

	return cfg, nil
}
