// Package monitor implements the live battery monitoring TUI using
// BubbleTea, with one tab per battery and real-time charts for voltage,
// energy rate and temperature.
package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/montanaflynn/stats"

	"github.com/luki/battop/internal/battery"
	"github.com/luki/battop/internal/chart"
	"github.com/luki/battop/internal/config"
	"github.com/luki/battop/internal/logger"
	"github.com/luki/battop/internal/view"
)

const chartHeight = 6

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type pollResult struct {
	index   int
	reading battery.Reading
	err     error
}

type batteryDataMsg struct {
	results []pollResult
	time    time.Time
}

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live monitor.
type Model struct {
	views    []*view.View
	interval time.Duration
	units    chart.Units

	tab       int
	err       error
	width     int
	height    int
	scroll    int
	lastPoll  time.Time
	startTime time.Time
	paused    bool
}

// New creates the initial model for the given batteries.
func New(batteries []*battery.Battery, cfg config.Config) Model {
	views := make([]*view.View, len(batteries))
	for i, b := range batteries {
		views[i] = view.New(b, cfg.Units)
	}
	return Model{
		views:     views,
		interval:  cfg.PollInterval,
		units:     cfg.Units,
		startTime: time.Now(),
	}
}

// ── Commands ─────────────────────────────────────────────────────────

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func pollCmd(views []*view.View) tea.Cmd {
	return func() tea.Msg {
		results := make([]pollResult, len(views))
		for i, v := range views {
			r, err := v.Battery().Refresh()
			results[i] = pollResult{index: i, reading: r, err: err}
		}
		return batteryDataMsg{results: results, time: time.Now()}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(pollCmd(m.views), tickCmd(m.interval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "tab":
			if len(m.views) > 0 {
				m.tab = (m.tab + 1) % len(m.views)
			}
		case "left", "h", "shift+tab":
			if len(m.views) > 0 {
				m.tab = (m.tab + len(m.views) - 1) % len(m.views)
			}
		case "u":
			if m.units == chart.Human {
				m.units = chart.Si
			} else {
				m.units = chart.Human
			}
			for _, v := range m.views {
				v.SetUnits(m.units)
			}
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, tickCmd(m.interval)
		}
		return m, tea.Batch(pollCmd(m.views), tickCmd(m.interval))

	case batteryDataMsg:
		m.lastPoll = msg.time
		m.err = nil
		log := logger.New("monitor")
		for _, res := range msg.results {
			if res.err != nil {
				// Skip the tick for this battery; its charts keep
				// their previous window.
				log.Error().Err(res.err).Msg("battery poll failed")
				m.err = res.err
				continue
			}
			m.views[res.index].Apply(res.reading)
		}
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorTabOn    = lipgloss.Color("214")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if len(m.views) > 1 {
		sections = append(sections, m.renderTabs(contentWidth))
	}

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if len(m.views) == 0 {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("No batteries found.")
		sections = append(sections, waiting)
	} else {
		v := m.views[m.tab]
		sections = append(sections, m.renderInfoLine(v))
		sections = append(sections, m.renderChartPanel(v.Voltage(), contentWidth))
		sections = append(sections, m.renderChartPanel(v.EnergyRate(), contentWidth))
		sections = append(sections, m.renderChartPanel(v.Temperature(), contentWidth))
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	start := m.scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("BATTOP")

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	if !m.lastPoll.IsZero() {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.lastPoll.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	units := "°C"
	if m.units == chart.Si {
		units = "K"
	}
	statusParts = append(statusParts, lipgloss.NewStyle().
		Foreground(colorDim).
		Render("units "+units))

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

func (m Model) renderTabs(width int) string {
	var tabs []string
	for i, v := range m.views {
		title := truncate(v.Title(), 24)
		if i == m.tab {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(colorTabOn).
				Bold(true).
				Render("["+title+"]"))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(colorDim).
				Render(" "+title+" "))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(tabs, " "))
}

func (m Model) renderInfoLine(v *view.View) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(colorLabel)

	parts := []string{dimS.Render("battery ") + valS.Render(v.Title())}

	if r, ok := v.Last(); ok {
		parts = append(parts, dimS.Render("state ")+valS.Render(r.State.String()))
		if r.HasPct {
			parts = append(parts, dimS.Render("charge ")+valS.Render(fmt.Sprintf("%.0f%%", r.Percent)))
		}
	}

	sep := dimS.Render("  │  ")
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render("  " + strings.Join(parts, sep))
}

func (m Model) renderChartPanel(b *chart.Buffer, totalWidth int) string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	gutterW := 5
	chartWidth := innerWidth - gutterW - 1
	if chartWidth < 15 {
		chartWidth = 15
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorLabel).
		Render(b.Title())
	current := lipgloss.NewStyle().
		Foreground(colorTabOn).
		Render(b.Current(m.units))
	heading := title + "  " + current

	canvas := chart.Render(b, chartWidth, chartHeight)
	canvasLines := strings.Split(canvas, "\n")

	labels := b.YLabels()
	gutterS := lipgloss.NewStyle().Foreground(colorDim).Width(gutterW).Align(lipgloss.Right)

	rows := []string{heading}
	for i, line := range canvasLines {
		gutter := strings.Repeat(" ", gutterW)
		switch i {
		case 0:
			gutter = gutterS.Render(labels[1])
		case len(canvasLines) - 1:
			gutter = gutterS.Render(labels[0])
		case len(canvasLines) / 2:
			gutter = gutterS.Render(b.YTitle(m.units))
		}
		rows = append(rows, gutter+" "+line)
	}

	if statsLine := renderStats(b); statsLine != "" {
		rows = append(rows, statsLine)
	}

	panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panelContent)
}

func renderStats(b *chart.Buffer) string {
	values := b.Values()
	if len(values) == 0 {
		return ""
	}

	avg, err := stats.Mean(values)
	if err != nil {
		return ""
	}
	lo, _ := stats.Min(values)
	pk, _ := stats.Max(values)

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return dimS.Render("avg") + valS.Render(fmt.Sprintf("%7.2f", avg)) +
		dimS.Render("  lo") + valS.Render(fmt.Sprintf("%7.2f", lo)) +
		dimS.Render("  pk") + valS.Render(fmt.Sprintf("%7.2f", pk)) +
		dimS.Render(fmt.Sprintf("  n %d", b.Len()))
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  h/l") + keyS.Render(":battery") +
		dimS.Render("  u") + keyS.Render(":units") +
		dimS.Render("  j/k") + keyS.Render(":scroll") +
		dimS.Render("  p") + keyS.Render(":pause")

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(keys)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
