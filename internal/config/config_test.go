package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luki/battop/internal/chart"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, chart.Human, cfg.Units)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BATTOP_UNITS", "si")
	t.Setenv("BATTOP_POLL_INTERVAL", "5")
	t.Setenv("BATTOP_LOG_FILE", "/tmp/battop.log")
	t.Setenv("BATTOP_DEBUG", "true")
	t.Setenv("BATTOP_SYSFS_ROOT", "/tmp/sysfs")

	cfg := Load()

	assert.Equal(t, chart.Si, cfg.Units)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "/tmp/battop.log", cfg.LogFile)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/sysfs", cfg.SysfsRoot)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("BATTOP_POLL_INTERVAL", "soon")
	t.Setenv("BATTOP_UNITS", "fahrenheit")
	t.Setenv("BATTOP_DEBUG", "maybe")

	cfg := Load()

	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, chart.Human, cfg.Units)
	assert.False(t, cfg.Debug)
}
