// Package chart provides the windowed multi-series point buffer behind each
// live chart, plus braille-canvas rendering with per-series colors.
package chart

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/battop/internal/battery"
)

// resolution is the total number of points a buffer holds across all of its
// series combined. The pool is shared: a busy series can starve a quiet one
// down to zero points.
const resolution = 512

// notAvailable is reported instead of a numeric value while a buffer is
// disabled (e.g. the battery exposes no temperature sensor).
const notAvailable = "NOT AVAILABLE"

// Units selects how temperature-like quantities are presented.
type Units int

const (
	// Human formats temperatures in degrees Celsius.
	Human Units = iota
	// Si formats temperatures in kelvin.
	Si
)

// Kind identifies which battery quantity a buffer tracks.
type Kind int

const (
	Voltage Kind = iota
	EnergyRate
	Temperature
)

// Point is a single chart sample. X is an age coordinate in push ticks, not
// wall time: every push shifts all stored points left by one unit and seeds
// the new point at resolution/2.
type Point struct {
	X float64
	Y float64
}

// Buffer holds a bounded window of samples for one chart. It keeps one
// age-ordered point sequence per series, a shared capacity pool, and exact
// min/max over every stored point. A buffer is owned by a single view and is
// not safe for concurrent use.
type Buffer struct {
	kind    Kind
	enabled bool
	state   battery.State

	capacity int
	sets     [][]Point
	colors   []lipgloss.Color

	latest float64
	min    float64
	max    float64
}

// New creates a buffer of the given kind with one series per color.
func New(kind Kind, colors ...lipgloss.Color) *Buffer {
	return newBuffer(kind, resolution, colors)
}

func newBuffer(kind Kind, capacity int, colors []lipgloss.Color) *Buffer {
	sets := make([][]Point, len(colors))
	for i := range sets {
		sets[i] = make([]Point, 0, capacity/2)
	}
	return &Buffer{
		kind:     kind,
		enabled:  true,
		state:    battery.Unknown,
		capacity: capacity,
		sets:     sets,
		colors:   colors,
		// Sentinels well outside any sane reading so the first push
		// establishes the real bounds.
		min: 100,
		max: 0,
	}
}

// SetEnabled marks the buffer as holding meaningful data. Disabling does not
// clear stored points; it only degrades the presentation accessors.
func (b *Buffer) SetEnabled(v bool) {
	b.enabled = v
}

// SetState records the battery state the buffer was last fed under. It only
// affects Title for energy-rate charts.
func (b *Buffer) SetState(s battery.State) {
	b.state = s
}

// Push appends a sample to the series at index. Index must be below the
// series count fixed at construction; violating that is a caller bug and
// panics. When the shared pool is full the globally oldest point is evicted
// first (smallest front x across all series, ties to the lowest series
// index), then every remaining point ages by one x unit.
func (b *Buffer) Push(value float64, index int) {
	if index < 0 || index >= len(b.sets) {
		panic(fmt.Sprintf("chart: series index %d out of range [0,%d)", index, len(b.sets)))
	}

	if b.Len() == b.capacity {
		b.evictOldest()
	}

	for _, set := range b.sets {
		for i := range set {
			set[i].X--
		}
	}

	b.latest = value
	b.sets[index] = append(b.sets[index], Point{X: float64(b.capacity) / 2, Y: value})

	b.recompute()
}

// evictOldest removes the point with the globally smallest x. Each series is
// age-ordered, so only front elements need comparing.
func (b *Buffer) evictOldest() {
	oldest := -1
	oldestX := math.Inf(1)
	for i, set := range b.sets {
		if len(set) == 0 {
			continue
		}
		if set[0].X < oldestX {
			oldestX = set[0].X
			oldest = i
		}
	}
	if oldest < 0 {
		return
	}
	b.sets[oldest] = b.sets[oldest][1:]
}

// recompute rescans every stored point for exact min/max. Full rescan is
// cheap at this capacity and keeps the bounds exact by construction.
func (b *Buffer) recompute() {
	first := true
	for _, set := range b.sets {
		for _, p := range set {
			if first {
				b.min, b.max = p.Y, p.Y
				first = false
				continue
			}
			if p.Y < b.min {
				b.min = p.Y
			}
			if p.Y > b.max {
				b.max = p.Y
			}
		}
	}
}

// Len returns the total number of stored points across all series.
func (b *Buffer) Len() int {
	n := 0
	for _, set := range b.sets {
		n += len(set)
	}
	return n
}

// Series is one renderable point sequence with its display color. Points is a
// view into the buffer, valid until the next Push.
type Series struct {
	Points []Point
	Color  lipgloss.Color
}

// Points returns every series in index order. The point slices are read-only
// views; re-fetch after each Push instead of holding them across mutations.
func (b *Buffer) Points() []Series {
	out := make([]Series, len(b.sets))
	for i, set := range b.sets {
		out[i] = Series{Points: set, Color: b.colors[i]}
	}
	return out
}

// Values returns the y values of every stored point, series by series.
func (b *Buffer) Values() []float64 {
	out := make([]float64, 0, b.Len())
	for _, set := range b.sets {
		for _, p := range set {
			out = append(out, p.Y)
		}
	}
	return out
}

// XBounds is the fixed x range of the chart. It does not depend on stored
// data: a point seeds at resolution/2 and scrolls out at 0.
func (b *Buffer) XBounds() [2]float64 {
	return [2]float64{0, float64(b.capacity) / 2}
}

func (b *Buffer) yLower() float64 {
	if !b.enabled {
		return 0
	}
	v := math.Floor(b.min - 1)
	if v < 0 {
		v = -1
	}
	return v
}

func (b *Buffer) yUpper() float64 {
	if !b.enabled {
		return 0
	}
	return math.Ceil(b.max + 1)
}

// YBounds is the y range to draw against. The one-unit padding keeps the
// extremes off the chart edge; a disabled buffer reports [0, 0].
func (b *Buffer) YBounds() [2]float64 {
	return [2]float64{b.yLower(), b.yUpper()}
}

// YLabels returns the y bounds formatted as integers, lower first.
func (b *Buffer) YLabels() []string {
	return []string{
		fmt.Sprintf("%2.0f", b.yLower()),
		fmt.Sprintf("%2.0f", b.yUpper()),
	}
}

// Title returns the chart heading. Energy-rate charts reword by battery
// state, everything else is static.
func (b *Buffer) Title() string {
	switch b.kind {
	case Voltage:
		return "Voltage"
	case EnergyRate:
		switch b.state {
		case battery.Charging:
			return "Charging with"
		case battery.Discharging:
			return "Discharging with"
		default:
			return "Consumption"
		}
	default:
		return "Temperature"
	}
}

// YTitle returns the unit abbreviation for the y axis.
func (b *Buffer) YTitle(units Units) string {
	switch b.kind {
	case Voltage:
		return "V"
	case EnergyRate:
		return "W"
	default:
		if units == Si {
			return "K"
		}
		return "°C"
	}
}

// Current returns the latest value formatted with its unit, or the
// unavailability sentinel while disabled.
func (b *Buffer) Current(units Units) string {
	if !b.enabled {
		return notAvailable
	}
	return fmt.Sprintf("%.2f %s", b.latest, b.YTitle(units))
}
