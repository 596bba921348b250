package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/daylight/internal/astro"
	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
)

// SeasonRow is an equinox or solstice with the day length at place.
type SeasonRow struct {
	Name      string
	At        time.Time
	DayLength time.Duration
}

// SeasonRows computes the day length at place on each season event.
func SeasonRows(s astro.Seasons, place location.Place) ([]SeasonRow, error) {
	events := s.Events()
	rows := make([]SeasonRow, 0, len(events))
	for _, ev := range events {
		r, err := daylight.Calculate(ev.At, place.Latitude, place.Longitude)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ev.Name, err)
		}
		rows = append(rows, SeasonRow{Name: ev.Name, At: ev.At, DayLength: r.DayLength})
	}
	return rows, nil
}

// WriteSeasons writes the equinoxes and solstices of s with the day
// length at place on each.
func WriteSeasons(w io.Writer, s astro.Seasons, place location.Place, loc *time.Location) error {
	rows, err := SeasonRows(s, place)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Seasons %d at %s (%s)\n", s.Year, displayName(place), loc)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-18s %-22s %-6s %s\n", "Event", "When", "Day", "")
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, row := range rows {
		fmt.Fprintf(w, "%-18s %-22s %6s %s\n",
			row.Name,
			row.At.In(loc).Format("Mon Jan 2 15:04 MST"),
			FormatDayLength(row.DayLength),
			Bar(row.DayLength.Hours()/24, 12),
		)
	}
	return nil
}
