package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
)

// WriteSummary writes the single-day report for place.
func WriteSummary(w io.Writer, place location.Place, day time.Time, r daylight.Result, loc *time.Location) {
	title := "Sunrise and set times for " + displayName(place)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(title))))

	row := func(label, value string) {
		fmt.Fprintf(w, "%-22s%s\n", label+":", value)
	}

	row("Date", day.In(loc).Format("Mon Jan 2 2006"))
	row("Timezone", loc.String())
	row("Latitude/Longitude", fmt.Sprintf("%.4f/%.4f", place.Latitude, place.Longitude))
	row("Declination", fmt.Sprintf("%.4f°", r.Declination))
	row("Day length", FormatDayLength(r.DayLength))
	row("Twilight AM", FormatClock(r.TwilightMorning, loc))
	row("Sunrise", FormatClock(r.Sunrise, loc))
	row("Noon", FormatClock(r.SolarNoon, loc))
	row("Sunset", FormatClock(r.Sunset, loc))
	row("Twilight PM", FormatClock(r.TwilightEvening, loc))
	row("Sun altitude", fmt.Sprintf("%.4f°", r.MaxAltitude))

	switch {
	case r.PolarDay():
		fmt.Fprintln(w, "\nThe sun does not set on this day.")
	case r.PolarNight():
		fmt.Fprintln(w, "\nThe sun does not rise on this day.")
	}
}

// WriteDaysTable writes one row per consecutive UTC date starting at start.
func WriteDaysTable(w io.Writer, place location.Place, start time.Time, results []daylight.Result, loc *time.Location) {
	fmt.Fprintf(w, "Daylight for %s, %d days (%s)\n", displayName(place), len(results), loc)
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if len(results) == 0 {
		fmt.Fprintln(w, "No days")
		return
	}

	fmt.Fprintf(w, "%-10s %-8s %-8s %-8s %-8s %-8s %-6s %s\n",
		"Date", "Dawn", "Sunrise", "Noon", "Sunset", "Dusk", "Length", "Day")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	first := daylight.Midnight(start)
	for i, r := range results {
		fmt.Fprintf(w, "%-10s %-8s %-8s %-8s %-8s %-8s %6s %s\n",
			first.AddDate(0, 0, i).Format(time.DateOnly),
			FormatClock(r.TwilightMorning, loc),
			FormatClock(r.Sunrise, loc),
			FormatClock(r.SolarNoon, loc),
			FormatClock(r.Sunset, loc),
			FormatClock(r.TwilightEvening, loc),
			FormatDayLength(r.DayLength),
			Bar(r.DayLength.Hours()/24, 24),
		)
	}

	fmt.Fprintf(w, "\nChange over period: %s\n",
		FormatDelta(results[len(results)-1].DayLength-results[0].DayLength))
}

// WriteNowLine writes a one-line status: current phase and the next event.
func WriteNowLine(w io.Writer, place location.Place, now time.Time, phase daylight.Phase, next daylight.Event, loc *time.Location) {
	fmt.Fprintf(w, "%s %s: %s, %s in %s (%s)\n",
		now.In(loc).Format("15:04"),
		displayName(place),
		phase,
		next.Kind,
		FormatCountdown(next.At.Sub(now)),
		next.At.In(loc).Format("15:04"),
	)
}

func displayName(p location.Place) string {
	if p.Name != "" {
		return truncateStr(p.Name, 40)
	}
	return fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude)
}
