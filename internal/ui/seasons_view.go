package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/litescript/daylight/internal/report"
	"github.com/litescript/daylight/internal/state"
)

// SeasonsModel shows the equinoxes and solstices of the selected year.
type SeasonsModel struct {
	width  int
	height int
	snap   state.Snapshot
	rows   []report.SeasonRow
	err    error
}

// NewSeasonsModel creates a new seasons view.
func NewSeasonsModel() SeasonsModel {
	return SeasonsModel{}
}

// SetSize updates dimensions.
func (m SeasonsModel) SetSize(width, height int) SeasonsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the snapshot. Rows are recomputed only when the year
// or place changes.
func (m SeasonsModel) UpdateData(snap state.Snapshot) SeasonsModel {
	changed := snap.Seasons.Year != m.snap.Seasons.Year || snap.Place != m.snap.Place
	m.snap = snap
	if !snap.HasPlace || snap.Seasons.Year == 0 {
		m.rows = nil
		m.err = nil
		return m
	}
	if changed || m.rows == nil {
		m.rows, m.err = report.SeasonRows(snap.Seasons, snap.Place)
	}
	return m
}

// View renders the seasons table.
func (m SeasonsModel) View() string {
	if m.err != nil {
		return "\n  " + dimStyle.Render("Seasons unavailable: "+m.err.Error()) + "\n"
	}
	if len(m.rows) == 0 {
		return "\n  " + dimStyle.Render("No seasons calculated yet.") + "\n"
	}

	loc := m.snap.Place.Location()
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("Seasons %d", m.snap.Seasons.Year)) + "\n\n")
	b.WriteString("  " + headerStyle.Render(fmt.Sprintf("%-18s %-22s %-6s", "Event", "When", "Day")) + "\n")

	for _, row := range m.rows {
		line := fmt.Sprintf("%-18s %-22s %6s",
			row.Name,
			row.At.In(loc).Format("Mon Jan 2 15:04 MST"),
			report.FormatDayLength(row.DayLength),
		)
		if !m.snap.Now.IsZero() && m.snap.Now.Before(row.At) && m.nextRow() == row.Name {
			line = selectedStyle.Render(line + "  in " + countdownDays(row.At.Sub(m.snap.Now)))
		}
		b.WriteString("  " + line + " " + barFillStyle.Render(report.Bar(row.DayLength.Hours()/24, 12)) + "\n")
	}
	return b.String()
}

// nextRow returns the name of the first season event after now.
func (m SeasonsModel) nextRow() string {
	for _, row := range m.rows {
		if m.snap.Now.Before(row.At) {
			return row.Name
		}
	}
	return ""
}

func countdownDays(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days < 1 {
		return report.FormatCountdown(d)
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
