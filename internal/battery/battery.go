// Package battery discovers batteries under the Linux power-supply sysfs
// tree and polls their electrical readings.
package battery

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultRoot is the kernel's power-supply class directory.
const DefaultRoot = "/sys/class/power_supply"

// State is the charge/discharge status reported by the kernel.
type State int

const (
	Unknown State = iota
	Charging
	Discharging
	Full
	NotCharging
	Empty
)

func (s State) String() string {
	switch s {
	case Charging:
		return "Charging"
	case Discharging:
		return "Discharging"
	case Full:
		return "Full"
	case NotCharging:
		return "Not charging"
	case Empty:
		return "Empty"
	default:
		return "Unknown"
	}
}

func parseState(s string) State {
	switch s {
	case "Charging":
		return Charging
	case "Discharging":
		return Discharging
	case "Full":
		return Full
	case "Not charging":
		return NotCharging
	case "Empty":
		return Empty
	default:
		return Unknown
	}
}

// Reading is one snapshot of a battery's sensors. Optional fields carry a
// Has flag; a zero with the flag unset means "not exposed", not "zero".
type Reading struct {
	State   State
	Voltage float64 // volts
	Power   float64 // watts
	Temp    float64 // degrees Celsius
	HasTemp bool
	Percent float64 // charge percentage
	HasPct  bool
}

// Battery is one discovered power-supply entry.
type Battery struct {
	dir string

	Name   string // sysfs entry name, e.g. "BAT0"
	Model  string
	Vendor string
	Serial string
}

// Find scans root for power-supply entries of type Battery. An empty root
// means DefaultRoot.
func Find(root string) ([]*Battery, error) {
	if root == "" {
		root = DefaultRoot
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("power supply dir: %w", err)
	}

	var batteries []*Battery
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		kind, err := readString(dir, "type")
		if err != nil || kind != "Battery" {
			continue
		}

		b := &Battery{dir: dir, Name: e.Name()}
		b.Model, _ = readString(dir, "model_name")
		b.Vendor, _ = readString(dir, "manufacturer")
		b.Serial, _ = readString(dir, "serial_number")
		batteries = append(batteries, b)
	}

	return batteries, nil
}

// Refresh reads the battery's current sensors. Identity fields are static
// and read once at discovery.
func (b *Battery) Refresh() (Reading, error) {
	var r Reading

	status, err := readString(b.dir, "status")
	if err != nil {
		return r, fmt.Errorf("%s: status: %w", b.Name, err)
	}
	r.State = parseState(status)

	uv, err := readFloat(b.dir, "voltage_now")
	if err != nil {
		return r, fmt.Errorf("%s: voltage: %w", b.Name, err)
	}
	r.Voltage = uv / 1e6

	// Some supplies expose power_now directly, others only current_now.
	if uw, err := readFloat(b.dir, "power_now"); err == nil {
		r.Power = uw / 1e6
	} else if ua, err := readFloat(b.dir, "current_now"); err == nil {
		r.Power = r.Voltage * ua / 1e6
	} else {
		return r, fmt.Errorf("%s: no power_now or current_now", b.Name)
	}

	// Tenths of a degree Celsius, and frequently absent entirely. Absence
	// is meaningful upstream: it suspends the temperature chart.
	if t, err := readFloat(b.dir, "temp"); err == nil {
		r.Temp = t / 10
		r.HasTemp = true
	}

	if pct, err := readFloat(b.dir, "capacity"); err == nil {
		r.Percent = pct
		r.HasPct = true
	}

	return r, nil
}

func readString(dir, file string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func readFloat(dir, file string) (float64, error) {
	s, err := readString(dir, file)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", file, err)
	}
	return v, nil
}
