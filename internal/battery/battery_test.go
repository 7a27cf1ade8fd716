package battery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSupply lays out one power-supply entry in a fake sysfs root.
func writeSupply(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content+"\n"), 0644))
	}
}

func TestFindSkipsNonBatteries(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains"})
	writeSupply(t, root, "BAT0", map[string]string{
		"type":         "Battery",
		"model_name":   "DELL X9FJ2",
		"manufacturer": "SMP",
	})

	batteries, err := Find(root)
	require.NoError(t, err)
	require.Len(t, batteries, 1)
	assert.Equal(t, "BAT0", batteries[0].Name)
	assert.Equal(t, "DELL X9FJ2", batteries[0].Model)
	assert.Equal(t, "SMP", batteries[0].Vendor)
}

func TestFindMissingRoot(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Discharging",
		"voltage_now": "12500000",
		"power_now":   "18200000",
		"temp":        "355",
		"capacity":    "87",
	})

	batteries, err := Find(root)
	require.NoError(t, err)
	require.Len(t, batteries, 1)

	r, err := batteries[0].Refresh()
	require.NoError(t, err)

	assert.Equal(t, Discharging, r.State)
	assert.InDelta(t, 12.5, r.Voltage, 1e-9)
	assert.InDelta(t, 18.2, r.Power, 1e-9)
	require.True(t, r.HasTemp)
	assert.InDelta(t, 35.5, r.Temp, 1e-9)
	require.True(t, r.HasPct)
	assert.InDelta(t, 87, r.Percent, 1e-9)
}

func TestRefreshPowerFromCurrent(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT1", map[string]string{
		"type":        "Battery",
		"status":      "Charging",
		"voltage_now": "11000000",
		"current_now": "2000000",
	})

	batteries, err := Find(root)
	require.NoError(t, err)

	r, err := batteries[0].Refresh()
	require.NoError(t, err)

	assert.Equal(t, Charging, r.State)
	assert.InDelta(t, 22.0, r.Power, 1e-9, "power falls back to voltage*current")
	assert.False(t, r.HasTemp, "absent temp file reports HasTemp=false")
	assert.False(t, r.HasPct)
}

func TestRefreshNoPowerSource(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Full",
		"voltage_now": "12000000",
	})

	batteries, err := Find(root)
	require.NoError(t, err)

	_, err = batteries[0].Refresh()
	assert.Error(t, err)
}

func TestParseState(t *testing.T) {
	cases := map[string]State{
		"Charging":     Charging,
		"Discharging":  Discharging,
		"Full":         Full,
		"Not charging": NotCharging,
		"Empty":        Empty,
		"Unknown":      Unknown,
		"garbage":      Unknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseState(in), "input %q", in)
	}
	assert.Equal(t, "Not charging", NotCharging.String())
}
