// Package view ties one battery to its three chart buffers and routes each
// poll result into them.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/battop/internal/battery"
	"github.com/luki/battop/internal/chart"
	"github.com/luki/battop/internal/logger"
)

var (
	colorCharge    = lipgloss.Color("78")
	colorDischarge = lipgloss.Color("196")
)

// View is the content of one battery tab: the battery handle, its latest
// reading and one chart buffer per tracked quantity. The energy-rate chart
// carries two series so charging and discharging draw in different colors.
type View struct {
	battery *battery.Battery
	units   chart.Units

	last    battery.Reading
	hasLast bool

	voltage     *chart.Buffer
	energyRate  *chart.Buffer
	temperature *chart.Buffer
}

// New creates the view for one battery.
func New(b *battery.Battery, units chart.Units) *View {
	return &View{
		battery:     b,
		units:       units,
		voltage:     chart.New(chart.Voltage, colorCharge),
		energyRate:  chart.New(chart.EnergyRate, colorCharge, colorDischarge),
		temperature: chart.New(chart.Temperature, colorCharge),
	}
}

// SetUnits changes the presentation units. Stored temperature points keep
// the scale they were pushed in; the change fully applies as the window
// rolls over.
func (v *View) SetUnits(units chart.Units) {
	v.units = units
}

// Units returns the current presentation units.
func (v *View) Units() chart.Units {
	return v.units
}

// Apply pushes one poll result into the chart buffers. Failed polls never
// reach here; the caller simply skips the tick for this battery.
func (v *View) Apply(r battery.Reading) {
	v.last = r
	v.hasLast = true

	v.voltage.Push(r.Voltage, 0)
	v.voltage.SetState(r.State)

	// Discharge draws as its own series so the renderer can color it
	// differently from charge.
	index := 0
	if r.State == battery.Discharging {
		index = 1
	}
	v.energyRate.Push(r.Power, index)
	v.energyRate.SetState(r.State)

	if r.HasTemp {
		value := r.Temp
		if v.units == chart.Si {
			value += 273.15
		}
		v.temperature.Push(value, 0)
		v.temperature.SetState(r.State)
		v.temperature.SetEnabled(true)
	} else {
		v.temperature.SetEnabled(false)
	}
}

// Battery returns the underlying battery handle.
func (v *View) Battery() *battery.Battery {
	return v.battery
}

// Title returns the tab heading for this battery, preferring model over
// vendor over serial number.
func (v *View) Title() string {
	log := logger.New("view")

	if v.battery.Model != "" {
		log.Debug().Str("model", v.battery.Model).Msg("using battery model as tab title")
		return v.battery.Model
	}
	if v.battery.Vendor != "" {
		log.Debug().Str("vendor", v.battery.Vendor).Msg("using battery vendor as tab title")
		return v.battery.Vendor
	}
	if v.battery.Serial != "" {
		log.Debug().Str("serial", v.battery.Serial).Msg("using battery serial as tab title")
		return v.battery.Serial
	}

	log.Warn().Str("battery", v.battery.Name).Msg("no usable tab title, falling back to unknown")
	return "Unknown battery"
}

// Last returns the most recent successful reading, if any.
func (v *View) Last() (battery.Reading, bool) {
	return v.last, v.hasLast
}

// Voltage returns the voltage chart buffer.
func (v *View) Voltage() *chart.Buffer { return v.voltage }

// EnergyRate returns the energy-rate chart buffer.
func (v *View) EnergyRate() *chart.Buffer { return v.energyRate }

// Temperature returns the temperature chart buffer.
func (v *View) Temperature() *chart.Buffer { return v.temperature }
