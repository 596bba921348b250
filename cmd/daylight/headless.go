package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/litescript/daylight/internal/astro"
	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
	"github.com/litescript/daylight/internal/logging"
	"github.com/litescript/daylight/internal/report"
)

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, place location.Place, date time.Time, logger *logging.Logger) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	outputOnce := func() error {
		now := time.Now()
		day := date
		if day.IsZero() {
			day = place.Today(now)
		}
		return writeReports(ctx, os.Stdout, place, day, now, logger)
	}

	// Single run
	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fatalf("%v", err)
		}
		return
	}

	// Watch mode: repeat at interval
	clearScreen := func() {
		if isTTY {
			fmt.Print("\033[H\033[2J")
		}
	}
	clearScreen()
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			clearScreen()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// writeReports writes every requested report for the UTC date of day.
func writeReports(ctx context.Context, w io.Writer, place location.Place, day, now time.Time, logger *logging.Logger) error {
	loc := place.Location()
	midday := daylight.Midnight(day).Add(12 * time.Hour)

	r, err := daylight.Calculate(midday, place.Latitude, place.Longitude)
	if err != nil {
		return err
	}

	// Now-playing mode
	if nowMode {
		next, err := daylight.NextEvent(now, place.Latitude, place.Longitude)
		if err != nil {
			return err
		}
		phase, err := daylight.CurrentPhase(now, place.Latitude, place.Longitude)
		if err != nil {
			return err
		}
		obs := astro.Observer{LatDeg: place.Latitude, LonDeg: place.Longitude, Name: place.Name}
		logger.Debug("Sun elevation now %.2f°", astro.SunElevation(now, obs))
		report.WriteNowLine(w, place, now, phase, next, loc)
		return nil
	}

	var sections int
	section := func() {
		if sections > 0 {
			fmt.Fprintln(w)
		}
		sections++
	}

	if summaryMode {
		section()
		report.WriteSummary(w, place, day, r, loc)
	}

	var results []daylight.Result
	if daysCount > 0 || jsonPath != "" {
		n := daysCount
		if n == 0 {
			n = 1
		}
		results, err = daylight.CalculateRange(ctx, midday, n, place.Latitude, place.Longitude)
		if err != nil {
			return err
		}
	}

	if daysCount > 0 {
		section()
		report.WriteDaysTable(w, place, midday, results, loc)
	}

	if compareMode {
		section()
		report.WriteComparison(w, report.Compare(place, day, r), loc)
	}

	if seasonsMode {
		section()
		if err := report.WriteSeasons(w, astro.SeasonsOf(day.Year()), place, loc); err != nil {
			return err
		}
	}

	// Export JSON if requested
	if jsonPath != "" {
		export := report.ExportSnapshot(place, midday, results, now)
		if jsonPath == "-" {
			if err := export.WriteJSON(w); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
			return nil
		}
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("create JSON file: %w", err)
		}
		defer f.Close()
		if err := export.WriteJSON(f); err != nil {
			return fmt.Errorf("write JSON to file: %w", err)
		}
		logger.Info("Wrote %d days to %s", len(results), jsonPath)
	}

	return nil
}
