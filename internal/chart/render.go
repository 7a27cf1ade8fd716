package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells pack 2x4 dots each. dotBits maps (dx, dy) within a cell to
// its bit in the U+2800 block.
var dotBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type cell struct {
	mask  rune
	color lipgloss.Color
}

// Render draws the buffer onto a width x height cell canvas, one braille dot
// per point, colored by series. Later series overdraw earlier ones where
// they share a cell. It never mutates the buffer; call again after each
// Push.
func Render(b *Buffer, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	xMax := b.XBounds()[1]
	yb := b.YBounds()
	span := yb[1] - yb[0]

	if b.Len() == 0 || span <= 0 {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		row := dim.Render(strings.Repeat("╌", width))
		rows := make([]string, height)
		for i := range rows {
			rows[i] = row
		}
		return strings.Join(rows, "\n")
	}

	cols := width * 2
	rows := height * 4

	grid := make([]cell, width*height)

	for _, s := range b.Points() {
		for _, p := range s.Points {
			if p.X < 0 || p.X > xMax {
				continue
			}
			col := int(p.X / xMax * float64(cols-1))

			norm := (p.Y - yb[0]) / span
			if norm < 0 {
				norm = 0
			}
			if norm > 1 {
				norm = 1
			}
			row := (rows - 1) - int(norm*float64(rows-1))

			c := &grid[(row/4)*width+col/2]
			c.mask |= dotBits[col%2][row%4]
			c.color = s.Color
		}
	}

	var sb strings.Builder
	for y := 0; y < height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			c := grid[y*width+x]
			if c.mask == 0 {
				sb.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(c.color)
			sb.WriteString(style.Render(string(rune(0x2800) | c.mask)))
		}
	}

	return sb.String()
}
