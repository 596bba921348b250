package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/daylight/internal/astro"
	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/report"
	"github.com/litescript/daylight/internal/state"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F4A261"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)

	phaseColors = map[daylight.Phase]lipgloss.Color{
		daylight.PhaseNight:           lipgloss.Color("#3A3F73"),
		daylight.PhaseMorningTwilight: lipgloss.Color("#E76F51"),
		daylight.PhaseDay:             lipgloss.Color("#F4D35E"),
		daylight.PhaseEveningTwilight: lipgloss.Color("#E76F51"),
	}
)

// Timeline and sparkline dimensions.
const (
	TimelineWidth  = 48
	SparklineWidth = 48
	recentEvents   = 5
)

// TodayModel shows the selected day at a glance.
type TodayModel struct {
	width  int
	height int
	snap   state.Snapshot
}

// NewTodayModel creates a new today view.
func NewTodayModel() TodayModel {
	return TodayModel{}
}

// SetSize updates dimensions.
func (m TodayModel) SetSize(width, height int) TodayModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the snapshot.
func (m TodayModel) UpdateData(snap state.Snapshot) TodayModel {
	m.snap = snap
	return m
}

// View renders the today view.
func (m TodayModel) View() string {
	if !m.snap.HasPlace {
		return "\n  " + dimStyle.Render("No location yet. Pass -lat/-lon, -place or -geoip.") + "\n"
	}
	if m.snap.Now.IsZero() {
		return "\n  " + dimStyle.Render("Calculating...") + "\n"
	}

	loc := m.snap.Place.Location()
	r := m.snap.Today

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render(m.snap.Place.String()))
	b.WriteString(dimStyle.Render("  " + m.snap.Date.Format("Mon Jan 2 2006") + " · " + loc.String()))
	b.WriteString("\n\n")

	left := m.renderTimes(r, loc)
	right := m.renderNow(loc)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(left), " ", boxStyle.Render(right)))
	b.WriteString("\n\n")

	start := localMidnight(m.snap.Date, loc)
	b.WriteString("  " + dimStyle.Render("Today  ") + renderTimeline(r, start, TimelineWidth, m.snap.Now))
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render("       ") + renderHourTicks(TimelineWidth))
	b.WriteString("\n\n")

	if m.snap.Trace != nil {
		b.WriteString("  " + dimStyle.Render("Sun    ") + renderElevationSparkline(m.snap.Trace, SparklineWidth))
		minEl, maxEl := m.snap.Trace.Range()
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %.0f°..%.0f° UTC day", minEl, maxEl)))
		b.WriteString("\n")
	}

	if len(m.snap.Events) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Recent") + "\n")
		events := m.snap.Events
		if len(events) > recentEvents {
			events = events[len(events)-recentEvents:]
		}
		for _, e := range events {
			b.WriteString("  " + dimStyle.Render(e.Timestamp.In(loc).Format("15:04:05")) + "  " + describeEvent(e, loc) + "\n")
		}
	}

	return b.String()
}

func (m TodayModel) renderTimes(r daylight.Result, loc *time.Location) string {
	rows := []struct {
		label string
		value string
	}{
		{"Twilight AM", report.FormatClock(r.TwilightMorning, loc)},
		{"Sunrise", report.FormatClock(r.Sunrise, loc)},
		{"Noon", report.FormatClock(r.SolarNoon, loc)},
		{"Sunset", report.FormatClock(r.Sunset, loc)},
		{"Twilight PM", report.FormatClock(r.TwilightEvening, loc)},
		{"Day length", report.FormatDayLength(r.DayLength)},
		{"Declination", fmt.Sprintf("%.4f°", r.Declination)},
		{"Sun altitude", fmt.Sprintf("%.2f°", r.MaxAltitude)},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(row.label) + valueStyle.Render(row.value))
	}
	switch {
	case r.PolarDay():
		b.WriteString("\n" + dimStyle.Render("The sun does not set."))
	case r.PolarNight():
		b.WriteString("\n" + dimStyle.Render("The sun does not rise."))
	}
	return b.String()
}

func (m TodayModel) renderNow(loc *time.Location) string {
	now := m.snap.Now
	phase := m.snap.Phase

	var b strings.Builder
	b.WriteString(labelStyle.Render("Now") + valueStyle.Render(now.In(loc).Format("15:04:05")))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Phase") + lipgloss.NewStyle().Foreground(phaseColors[phase]).Bold(true).Render(phase.String()))
	b.WriteString("\n")

	if m.snap.Trace != nil {
		el := astro.SunElevation(now, m.snap.Trace.Observer)
		b.WriteString(labelStyle.Render("Elevation") + lipgloss.NewStyle().Foreground(lipgloss.Color(tierColor(astro.TierFor(el)))).Render(fmt.Sprintf("%.1f°", el)))
		b.WriteString("\n")
	}

	next := m.snap.Next
	if !next.At.IsZero() {
		b.WriteString(labelStyle.Render("Next") + valueStyle.Render(fmt.Sprintf("%s in %s", next.Kind, report.FormatCountdown(next.At.Sub(now)))))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("") + dimStyle.Render(next.At.In(loc).Format("Mon 15:04:05")))
	}
	return b.String()
}

func describeEvent(e state.Event, loc *time.Location) string {
	switch e.Type {
	case state.EventSun:
		return fmt.Sprintf("%s at %s", e.Kind, e.At.In(loc).Format("15:04:05"))
	case state.EventPlaceChanged:
		return "location set to " + e.Place
	case state.EventDayRollover:
		return "new day " + e.At.Format(time.DateOnly)
	default:
		return string(e.Type)
	}
}

// localMidnight returns the start of day's calendar date in loc.
func localMidnight(day time.Time, loc *time.Location) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}

// timelinePhases classifies width equal slices of the 24 hours after start,
// each at its centre.
func timelinePhases(r daylight.Result, start time.Time, width int) []daylight.Phase {
	if width <= 0 {
		return nil
	}
	cell := 24 * time.Hour / time.Duration(width)
	phases := make([]daylight.Phase, width)
	for i := range phases {
		t := start.Add(time.Duration(i)*cell + cell/2)
		phases[i] = r.PhaseAt(t)
	}
	return phases
}

// nowCell returns the timeline cell holding now, or -1 when now is outside
// the 24 hours after start.
func nowCell(start, now time.Time, width int) int {
	if width <= 0 || now.Before(start) || !now.Before(start.Add(24*time.Hour)) {
		return -1
	}
	cell := 24 * time.Hour / time.Duration(width)
	return int(now.Sub(start) / cell)
}

func renderTimeline(r daylight.Result, start time.Time, width int, now time.Time) string {
	phases := timelinePhases(r, start, width)
	marker := nowCell(start, now, width)

	var b strings.Builder
	for i, p := range phases {
		char := "░"
		switch p {
		case daylight.PhaseDay:
			char = "█"
		case daylight.PhaseMorningTwilight, daylight.PhaseEveningTwilight:
			char = "▒"
		}
		style := lipgloss.NewStyle().Foreground(phaseColors[p])
		if i == marker {
			char = "│"
			style = style.Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
		}
		b.WriteString(style.Render(char))
	}
	return b.String()
}

// renderHourTicks labels every sixth hour under a timeline of width cells.
func renderHourTicks(width int) string {
	line := []rune(strings.Repeat(" ", width))
	for h := 0; h < 24; h += 6 {
		label := fmt.Sprintf("%02d", h)
		pos := h * width / 24
		for i, r := range label {
			if pos+i < len(line) {
				line[pos+i] = r
			}
		}
	}
	return dimStyle.Render(string(line))
}

// Sparkline block characters (8 levels)
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// tierColor returns the display color for a sky tier.
func tierColor(t astro.SkyTier) string {
	switch t {
	case astro.SkyNight:
		return "#3A3F73"
	case astro.SkyTwilight:
		return "#E76F51"
	case astro.SkyLow:
		return "#F4A261"
	case astro.SkyMedium:
		return "#F4D35E"
	default:
		return "#FFF3B0"
	}
}

// renderElevationSparkline draws the trace scaled between its own minimum
// and maximum, colored by sky tier.
func renderElevationSparkline(tr *astro.Trace, width int) string {
	if tr == nil || len(tr.Samples) == 0 || width <= 0 {
		return ""
	}

	elevations := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		elevations[i] = s.Elevation
	}
	resampled := resampleElevation(elevations, width)
	minEl, maxEl := tr.Range()

	var b strings.Builder
	for _, el := range resampled {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(tierColor(astro.TierFor(el)))).
			Render(string(sparklineBlock(el, minEl, maxEl))))
	}
	return b.String()
}

// sparklineBlock maps el linearly from [minEl, maxEl] onto the block runes.
func sparklineBlock(el, minEl, maxEl float64) rune {
	span := maxEl - minEl
	if span <= 0 {
		return sparklineBlocks[0]
	}
	idx := int((el - minEl) / span * float64(len(sparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparklineBlocks) {
		idx = len(sparklineBlocks) - 1
	}
	return sparklineBlocks[idx]
}

// resampleElevation resamples elevation data to a target width by averaging
// each bucket. Input shorter than width is returned as is.
func resampleElevation(data []float64, targetWidth int) []float64 {
	if len(data) <= targetWidth || targetWidth <= 0 {
		return data
	}

	result := make([]float64, targetWidth)
	bucketSize := float64(len(data)) / float64(targetWidth)

	for i := 0; i < targetWidth; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}

		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(end-start)
	}

	return result
}
