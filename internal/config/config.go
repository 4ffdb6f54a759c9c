// Package config loads settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvDB           = "STUDYCARDS_DB"
	EnvDriver       = "STUDYCARDS_DRIVER"
	EnvDSN          = "STUDYCARDS_DSN"
	EnvAddr         = "STUDYCARDS_ADDR"
	EnvNewCardLimit = "STUDYCARDS_NEW_CARD_LIMIT"
	EnvTimezone     = "STUDYCARDS_TIMEZONE"
	EnvRemindEvery  = "STUDYCARDS_REMIND_EVERY"
)

// Config holds runtime settings.
type Config struct {
	DBPath       string
	Driver       string
	DSN          string
	Addr         string
	NewCardLimit int
	Location     *time.Location
	RemindEvery  time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DBPath:       DefaultDBPath(),
		Driver:       "sqlite",
		Addr:         ":8000",
		NewCardLimit: 20,
		Location:     time.Local,
		RemindEvery:  time.Hour,
	}
}

// DefaultDBPath returns ~/.studycards/studycards.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".studycards", "studycards.db")
}

// Load reads envFile if it exists, then the environment. Variables already
// set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(EnvDriver); v != "" {
		cfg.Driver = v
	}
	if v := getenv(EnvDSN); v != "" {
		cfg.DSN = v
	}
	if v := getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := getenv(EnvNewCardLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("%s: invalid limit %q", EnvNewCardLimit, v)
		}
		cfg.NewCardLimit = n
	}
	if v := getenv(EnvTimezone); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTimezone, err)
		}
		cfg.Location = loc
	}
	if v := getenv(EnvRemindEvery); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%s: invalid duration %q", EnvRemindEvery, v)
		}
		cfg.RemindEvery = d
	}

	return cfg, nil
}
