// Package config loads application settings from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/luki/battop/internal/chart"
)

// Config holds every tunable of the monitor. Values come from the
// environment; command-line flags may override them afterwards.
type Config struct {
	// Units selects Celsius (human) or kelvin (SI) presentation.
	Units chart.Units
	// PollInterval is the delay between battery refreshes.
	PollInterval time.Duration
	// LogFile receives zerolog output; empty disables logging.
	LogFile string
	// SysfsRoot overrides the power-supply directory, for tests.
	SysfsRoot string
	// Debug lowers the log level to debug.
	Debug bool
}

// Load reads a .env file if present, then the environment.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Units:        chart.Human,
		PollInterval: time.Second,
		LogFile:      envStr("BATTOP_LOG_FILE", ""),
		SysfsRoot:    envStr("BATTOP_SYSFS_ROOT", ""),
		Debug:        envBool("BATTOP_DEBUG", false),
	}

	if envStr("BATTOP_UNITS", "human") == "si" {
		cfg.Units = chart.Si
	}
	if secs := envInt("BATTOP_POLL_INTERVAL", 0); secs > 0 {
		cfg.PollInterval = time.Duration(secs) * time.Second
	}

	return cfg
}

func envStr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
