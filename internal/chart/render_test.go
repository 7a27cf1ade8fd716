package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmptyBuffer(t *testing.T) {
	b := newBuffer(Voltage, 8, []lipgloss.Color{green})

	out := Render(b, 10, 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "╌", "empty chart renders placeholder dashes")
	}
}

func TestRenderDimensions(t *testing.T) {
	b := newBuffer(Voltage, 64, []lipgloss.Color{green, red})
	for i := 0; i < 40; i++ {
		b.Push(float64(10+i%7), i%2)
	}

	out := Render(b, 20, 4)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	var dots int
	for _, r := range out {
		if r >= 0x2800 && r <= 0x28FF {
			dots++
		}
	}
	assert.Greater(t, dots, 0, "expected braille cells in output")
}

func TestRenderZeroSize(t *testing.T) {
	b := newBuffer(Voltage, 8, []lipgloss.Color{green})
	assert.Equal(t, "", Render(b, 0, 5))
	assert.Equal(t, "", Render(b, 5, 0))
}

func TestRenderDoesNotMutate(t *testing.T) {
	b := newBuffer(Voltage, 16, []lipgloss.Color{green})
	for i := 0; i < 10; i++ {
		b.Push(float64(i), 0)
	}

	before := Render(b, 12, 3)
	assert.Equal(t, before, Render(b, 12, 3))
	assert.Equal(t, 10, b.Len())
}

func TestRenderDisabledBuffer(t *testing.T) {
	b := newBuffer(Temperature, 8, []lipgloss.Color{green})
	b.Push(40, 0)
	b.SetEnabled(false)

	// Disabled bounds are degenerate, so the placeholder is drawn.
	out := Render(b, 10, 2)
	assert.Contains(t, out, "╌")
}
