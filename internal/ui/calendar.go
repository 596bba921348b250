package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/report"
	"github.com/litescript/daylight/internal/state"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F4A261")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Bold(true)

	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D35E"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3F73"))
)

const dayBarWidth = 24

// CalendarModel lists the days around the selected date.
type CalendarModel struct {
	width  int
	height int
	snap   state.Snapshot
	scroll int
}

// NewCalendarModel creates a new calendar view.
func NewCalendarModel() CalendarModel {
	return CalendarModel{}
}

// SetSize updates dimensions.
func (m CalendarModel) SetSize(width, height int) CalendarModel {
	m.width = width
	m.height = height
	m.scroll = m.clampScroll(m.scroll)
	return m
}

// UpdateData replaces the snapshot and keeps the selected date in view.
func (m CalendarModel) UpdateData(snap state.Snapshot) CalendarModel {
	m.snap = snap
	if sel := m.selectedIndex(); sel >= 0 {
		visible := m.visibleRows()
		if sel < m.scroll {
			m.scroll = sel
		} else if sel >= m.scroll+visible {
			m.scroll = sel - visible + 1
		}
	}
	m.scroll = m.clampScroll(m.scroll)
	return m
}

// Update handles messages.
func (m CalendarModel) Update(msg tea.Msg) (CalendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			m.scroll = m.clampScroll(m.scroll - 1)
		case "down", "j":
			m.scroll = m.clampScroll(m.scroll + 1)
		case "home":
			m.scroll = 0
		case "end":
			m.scroll = m.clampScroll(len(m.snap.Window))
		}
	}
	return m, nil
}

// visibleRows is the number of day rows that fit. Title, header and summary
// take six lines.
func (m CalendarModel) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m CalendarModel) clampScroll(scroll int) int {
	maxScroll := len(m.snap.Window) - m.visibleRows()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// selectedIndex returns the window row of the selected date, or -1.
func (m CalendarModel) selectedIndex() int {
	if m.snap.Date.IsZero() || m.snap.WindowStart.IsZero() {
		return -1
	}
	idx := int(m.snap.Date.Sub(m.snap.WindowStart) / (24 * time.Hour))
	if idx < 0 || idx >= len(m.snap.Window) {
		return -1
	}
	return idx
}

// View renders the calendar.
func (m CalendarModel) View() string {
	if len(m.snap.Window) == 0 {
		return "\n  " + dimStyle.Render("No days calculated yet.") + "\n"
	}

	loc := m.snap.Place.Location()
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("%d days around %s", len(m.snap.Window), m.snap.Date.Format("Jan 2 2006"))) + "\n\n")
	b.WriteString("  " + headerStyle.Render(fmt.Sprintf("%-15s %-9s %-9s %-9s %-6s %-9s", "Date", "Sunrise", "Noon", "Sunset", "Length", "Change")) + "\n")

	sel := m.selectedIndex()
	end := m.scroll + m.visibleRows()
	if end > len(m.snap.Window) {
		end = len(m.snap.Window)
	}

	for i := m.scroll; i < end; i++ {
		r := m.snap.Window[i]
		day := m.snap.WindowStart.AddDate(0, 0, i)

		change := ""
		if i > 0 {
			change = report.FormatDelta(r.DayLength - m.snap.Window[i-1].DayLength)
		}
		row := fmt.Sprintf("%-15s %-9s %-9s %-9s %-6s %-9s",
			day.Format("Mon Jan 02"),
			report.FormatClock(r.Sunrise, loc),
			report.FormatClock(r.SolarNoon, loc),
			report.FormatClock(r.Sunset, loc),
			report.FormatDayLength(r.DayLength),
			change,
		)

		prefix := "  "
		if i == sel {
			prefix = selectedStyle.Render("▶ ")
			row = selectedStyle.Render(row)
		}
		b.WriteString(prefix + row + " " + renderDayBar(r, dayBarWidth) + "\n")
	}

	if len(m.snap.Window) > m.visibleRows() {
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d-%d of %d", m.scroll+1, end, len(m.snap.Window))) + "\n")
	}
	return b.String()
}

// renderDayBar draws the fraction of the day the sun is up.
func renderDayBar(r daylight.Result, width int) string {
	bar := []rune(report.Bar(r.DayLength.Hours()/24, width))
	filled := 0
	for _, c := range bar {
		if c == '█' {
			filled++
		}
	}
	return barFillStyle.Render(string(bar[:filled])) + barEmptyStyle.Render(string(bar[filled:]))
}
