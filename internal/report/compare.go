package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/daylight/internal/astro"
	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
)

// ComparisonRow pairs one of our instants with a reference value.
type ComparisonRow struct {
	Event     daylight.EventKind
	Ours      time.Time
	Reference time.Time
	Source    string
}

// Valid reports whether both instants exist.
func (r ComparisonRow) Valid() bool {
	return !r.Ours.IsZero() && !r.Reference.IsZero()
}

// Delta returns ours minus the reference.
func (r ComparisonRow) Delta() time.Duration {
	if !r.Valid() {
		return 0
	}
	return r.Ours.Sub(r.Reference)
}

// Comparison cross-checks a result against independent algorithms.
type Comparison struct {
	Place location.Place
	Date  time.Time
	Rows  []ComparisonRow
}

// Sources used by Compare.
const (
	SourceSunrise = "go-sunrise"
	SourceTrace   = "ephemeris"
)

// Compare computes reference instants for the UTC date of day.
// Rise, set and civil twilight come from go-sunrise; solar noon comes
// from the peak of the ephemeris elevation trace. Reference values that
// do not exist on that date (polar day or night) are left zero.
func Compare(place location.Place, day time.Time, r daylight.Result) Comparison {
	d := day.UTC()
	y, m, dd := d.Date()

	rise, set := sunrise.SunriseSunset(place.Latitude, place.Longitude, y, m, dd)
	dawn, dusk := sunrise.TimeOfElevation(place.Latitude, place.Longitude, astro.CivilElevation, y, m, dd)

	obs := astro.Observer{LatDeg: place.Latitude, LonDeg: place.Longitude, Name: place.Name}
	noon, _ := astro.ElevationTrace(d, obs, 5*time.Minute).Peak()

	events := r.Events()
	ours := func(kind daylight.EventKind) time.Time {
		for _, ev := range events {
			if ev.Kind == kind {
				return ev.At
			}
		}
		return time.Time{}
	}

	return Comparison{
		Place: place,
		Date:  daylight.Midnight(d),
		Rows: []ComparisonRow{
			{daylight.EventTwilightMorning, ours(daylight.EventTwilightMorning), dawn, SourceSunrise},
			{daylight.EventSunrise, ours(daylight.EventSunrise), rise, SourceSunrise},
			{daylight.EventSolarNoon, ours(daylight.EventSolarNoon), noon, SourceTrace},
			{daylight.EventSunset, ours(daylight.EventSunset), set, SourceSunrise},
			{daylight.EventTwilightEvening, ours(daylight.EventTwilightEvening), dusk, SourceSunrise},
		},
	}
}

// MaxDelta returns the largest absolute difference over valid rows.
func (c Comparison) MaxDelta() time.Duration {
	var maxAbs time.Duration
	for _, row := range c.Rows {
		d := row.Delta()
		if d < 0 {
			d = -d
		}
		if d > maxAbs {
			maxAbs = d
		}
	}
	return maxAbs
}

// WriteComparison writes c as a table with clock times in loc.
func WriteComparison(w io.Writer, c Comparison, loc *time.Location) {
	fmt.Fprintf(w, "Cross-check for %s on %s\n", displayName(c.Place), c.Date.Format(time.DateOnly))
	fmt.Fprintln(w, strings.Repeat("─", 64))
	fmt.Fprintf(w, "%-18s %-10s %-10s %-10s %s\n", "Event", "Ours", "Reference", "Delta", "Source")
	fmt.Fprintln(w, strings.Repeat("─", 64))

	for _, row := range c.Rows {
		delta := "n/a"
		if row.Valid() {
			delta = FormatDelta(row.Delta())
		}
		fmt.Fprintf(w, "%-18s %-10s %-10s %-10s %s\n",
			row.Event,
			FormatClock(row.Ours, loc),
			FormatClock(row.Reference, loc),
			delta,
			row.Source,
		)
	}

	fmt.Fprintf(w, "\nLargest difference: %s\n", FormatDelta(c.MaxDelta()))
}
