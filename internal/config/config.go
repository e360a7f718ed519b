// Package config reads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Storage
	DBPath     string `env:"QUEENDOM_DB"`
	LadderPath string `env:"QUEENDOM_LADDER"`

	// Duty days are counted in this zone; empty means the system zone.
	TimeZone string `env:"QUEENDOM_TZ"`

	// Kneeling
	KneelCooldownMin int `env:"QUEENDOM_KNEEL_COOLDOWN_MIN" envDefault:"60"`
	KneelHoldMS      int `env:"QUEENDOM_KNEEL_HOLD_MS" envDefault:"2000"`
	RewardCoins      int `env:"QUEENDOM_REWARD_COINS" envDefault:"10"`
	RewardPoints     int `env:"QUEENDOM_REWARD_POINTS" envDefault:"50"`

	// Tasks drawn when a member's queue is empty, separated by "|".
	TaskPool []string `env:"QUEENDOM_TASK_POOL" envSeparator:"|"`

	LogUseCases bool `env:"QUEENDOM_LOG_USE_CASES" envDefault:"false"`

	// Bridge
	Listen       string  `env:"QUEENDOM_LISTEN" envDefault:":8787"`
	RateLimitRPS float64 `env:"QUEENDOM_RATE_LIMIT_RPS" envDefault:"20"`
}

// Load reads .env (if present) and then the process environment. Values
// already set in the environment win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".queendom", "queendom.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.KneelCooldownMin < 0 {
		errs = append(errs, errors.New("QUEENDOM_KNEEL_COOLDOWN_MIN must be non-negative"))
	}
	if c.KneelHoldMS <= 0 {
		errs = append(errs, errors.New("QUEENDOM_KNEEL_HOLD_MS must be positive"))
	}
	if c.RewardCoins < 0 || c.RewardPoints < 0 {
		errs = append(errs, errors.New("kneel rewards must be non-negative"))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("QUEENDOM_RATE_LIMIT_RPS must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves TimeZone, defaulting to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("QUEENDOM_TZ: %w", err)
	}
	return loc, nil
}

func (c Config) KneelCooldown() time.Duration {
	return time.Duration(c.KneelCooldownMin) * time.Minute
}

func (c Config) KneelHold() time.Duration {
	return time.Duration(c.KneelHoldMS) * time.Millisecond
}
