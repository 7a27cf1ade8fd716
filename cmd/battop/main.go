// battop is a terminal battery monitor. It polls every battery under
// /sys/class/power_supply and charts voltage, energy rate and temperature.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/battop/internal/battery"
	"github.com/luki/battop/internal/chart"
	"github.com/luki/battop/internal/config"
	"github.com/luki/battop/internal/logger"
	"github.com/luki/battop/internal/monitor"
)

func main() {
	cfg := config.Load()

	si := flag.Bool("si", cfg.Units == chart.Si, "use SI units (kelvin) instead of Celsius")
	interval := flag.Duration("interval", cfg.PollInterval, "battery poll interval")
	logFile := flag.String("log", cfg.LogFile, "debug log file (TUI owns the terminal)")
	flag.Parse()

	cfg.Units = chart.Human
	if *si {
		cfg.Units = chart.Si
	}
	if *interval < 100*time.Millisecond {
		fmt.Fprintln(os.Stderr, "interval too small, minimum is 100ms")
		os.Exit(2)
	}
	cfg.PollInterval = *interval
	cfg.LogFile = *logFile

	closer, err := logger.Setup(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	batteries, err := battery.Find(cfg.SysfsRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(batteries) == 0 {
		fmt.Fprintln(os.Stderr, "No batteries found.")
		os.Exit(1)
	}

	log := logger.New("main")
	log.Info().Int("batteries", len(batteries)).Dur("interval", cfg.PollInterval).Msg("starting monitor")

	p := tea.NewProgram(
		monitor.New(batteries, cfg),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
