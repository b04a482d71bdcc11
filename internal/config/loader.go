package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "DREAMXI_"
	EnvFile   = "DREAMXI_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DREAMXI_CONFIG is set
//  3. env (prefix DREAMXI_); nested keys use a double underscore,
//     e.g. DREAMXI_REPLACEMENT__MIN_BID_PRICE
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	// Tables from the file replace the defaults instead of merging into them.
	if k.Exists("country_rankings") {
		cfg.CountryRankings = nil
	}
	if k.Exists("captain_overrides") {
		cfg.CaptainOverrides = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the engines cannot recover from.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.GroupStageLastDay < 1:
		return fmt.Errorf("%w: group_stage_last_day must be positive", ErrInvalidConfig)
	case c.CaptainMultiplier <= 0 || c.ViceCaptainMultiplier <= 0:
		return fmt.Errorf("%w: multipliers must be positive", ErrInvalidConfig)
	case c.ReloadIntervalSec < 0:
		return fmt.Errorf("%w: reload_interval_sec must not be negative", ErrInvalidConfig)
	}
	switch c.FlagMode {
	case "phase", "daily":
	default:
		return fmt.Errorf("%w: unknown flag_mode %q", ErrInvalidConfig, c.FlagMode)
	}
	switch c.DayRangePolicy {
	case "clamp", "reject":
	default:
		return fmt.Errorf("%w: unknown day_range_policy %q", ErrInvalidConfig, c.DayRangePolicy)
	}
	return nil
}
