package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mcdev12/chessclock/go/internal/config"
	"gopkg.in/yaml.v3"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

// loadConfig starts from the board defaults, overlays the YAML file at path
// if it exists, then applies environment overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.LogLevel = getEnv("CHESSCLOCK_LOG_LEVEL", cfg.LogLevel)
	if cfg.Clock.DefaultAllowance, err = getEnvAsDuration("CHESSCLOCK_DEFAULT_ALLOWANCE", cfg.Clock.DefaultAllowance); err != nil {
		return nil, err
	}
	if cfg.Clock.MaxAllowance, err = getEnvAsDuration("CHESSCLOCK_MAX_ALLOWANCE", cfg.Clock.MaxAllowance); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
