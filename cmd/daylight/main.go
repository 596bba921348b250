// Command daylight shows sunrise, sunset and civil twilight for a place,
// as a terminal UI or as plain text and JSON reports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/litescript/daylight/internal/location"
	"github.com/litescript/daylight/internal/logging"
	"github.com/litescript/daylight/internal/state"
	"github.com/litescript/daylight/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	nowMode       bool
	compareMode   bool
	seasonsMode   bool
	daysCount     int
	jsonPath      string
	watchInterval time.Duration
)

const (
	defaultRefresh = 1 * time.Second
	minRefresh     = 250 * time.Millisecond
	maxRefresh     = 1 * time.Minute
	maxDays        = 3660
)

func main() {
	var opts placeOptions

	// Parse flags
	flag.Float64Var(&opts.lat, "lat", 0, "Latitude in degrees, north positive")
	flag.Float64Var(&opts.lon, "lon", 0, "Longitude in degrees, east positive")
	flag.StringVar(&opts.place, "place", "", "Named place from the places file")
	flag.StringVar(&opts.configPath, "config", "", "Places file (default $XDG_CONFIG_HOME/daylight/places.yaml)")
	flag.BoolVar(&opts.geoIP, "geoip", false, "Fall back to geo-IP lookup for the location")
	flag.StringVar(&opts.tz, "tz", "", "IANA time zone for display (e.g. Europe/Amsterdam)")
	dateStr := flag.String("date", "", "Date to show, YYYY-MM-DD (default today)")
	refresh := flag.Duration("refresh", defaultRefresh, "TUI refresh interval")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print the day report instead of the TUI")
	flag.IntVar(&daysCount, "days", 0, "Print a table of this many days")
	flag.StringVar(&jsonPath, "json", "", "Export JSON to file (use - for stdout)")
	flag.BoolVar(&nowMode, "now", false, "Single-line current phase and next event")
	flag.BoolVar(&compareMode, "compare", false, "Compare against reference algorithms")
	flag.BoolVar(&seasonsMode, "seasons", false, "Print equinoxes and solstices of the year")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			opts.latSet = true
		case "lon":
			opts.lonSet = true
		}
	})

	// Validate refresh interval
	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}
	if err := checkModes(); err != nil {
		fatalf("%v", err)
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}

	var date time.Time
	if *dateStr != "" {
		d, err := time.Parse(time.DateOnly, *dateStr)
		if err != nil {
			fatalf("invalid -date %q: want YYYY-MM-DD", *dateStr)
		}
		date = d
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	place, placesPath, err := resolvePlace(ctx, opts, logger)
	if err != nil {
		fatalf("%v", err)
	}
	logger.Info("Location: %s", place)

	// Initialize components
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateMgr := state.NewManager(stateCfg)
	if err := stateMgr.SetPlace(place); err != nil {
		fatalf("%v", err)
	}
	if !date.IsZero() {
		stateMgr.SetDate(date)
	}

	// Headless mode: no TUI
	if headlessMode() {
		runHeadless(ctx, place, date, logger)
		return
	}

	// Create TUI model
	model := ui.New(stateMgr)

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Start update loop in background
	go runUpdateLoop(ctx, stateMgr, p, logger)

	// Follow edits to the places file unless coordinates were given
	if placesPath != "" && !opts.latSet {
		go watchPlaces(ctx, placesPath, opts, stateMgr, p, logger)
	}

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func runUpdateLoop(ctx context.Context, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	// Do initial update immediately
	doUpdate(ctx, stateMgr, p, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Update loop shutting down")
			return
		case <-ticker.C:
			doUpdate(ctx, stateMgr, p, logger)
		}
	}
}

func doUpdate(ctx context.Context, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	if err := stateMgr.Update(ctx, time.Now()); err != nil {
		logger.Error("Update failed: %v", err)
		p.Send(ui.ErrorMsg{Error: err})
		return
	}
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

// watchPlaces re-resolves the place whenever the places file changes.
func watchPlaces(ctx context.Context, path string, opts placeOptions, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	w, err := location.NewWatcher(path, logger.Named("places"))
	if err != nil {
		logger.Warn("Not watching places file: %v", err)
		return
	}

	err = w.Run(ctx, func(cfg *location.Config) {
		place, err := resolveWith(ctx, opts, cfg, logger)
		if err != nil {
			logger.Warn("Places file changed: %v", err)
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		if err := stateMgr.SetPlace(place); err != nil {
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		doUpdate(ctx, stateMgr, p, logger)
	})
	if err != nil && ctx.Err() == nil {
		logger.Warn("Places watcher stopped: %v", err)
	}
}

// headlessMode reports whether any text or JSON output was requested.
func headlessMode() bool {
	return summaryMode || daysCount > 0 || jsonPath != "" || nowMode || compareMode || seasonsMode
}

// checkModes rejects flag combinations that would silently drop output.
func checkModes() error {
	if daysCount < 0 || daysCount > maxDays {
		return fmt.Errorf("-days must be between 0 and %d", maxDays)
	}
	if watchInterval < 0 {
		return errors.New("-watch interval must be positive")
	}
	if watchInterval > 0 && !headlessMode() {
		return errors.New("-watch needs an output mode such as -summary or -now")
	}
	if nowMode && (summaryMode || daysCount > 0 || jsonPath != "" || compareMode || seasonsMode) {
		return errors.New("-now prints a single line and cannot be combined with other output modes")
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
