// Package report renders daylight results as text and JSON for the
// headless modes of the CLI.
package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatDayLength renders d as h:mm, truncating seconds.
func FormatDayLength(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Minute)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDelta renders a signed difference as "+1m05s", "-42s" or "0s".
func FormatDelta(d time.Duration) string {
	d = d.Round(time.Second)
	if d == 0 {
		return "0s"
	}
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	if d < time.Minute {
		return fmt.Sprintf("%s%ds", sign, int(d/time.Second))
	}
	return fmt.Sprintf("%s%dm%02ds", sign, int(d/time.Minute), int(d%time.Minute/time.Second))
}

// FormatCountdown renders a positive duration as "2h13m" or "45m".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Minute)
	if h := int(d / time.Hour); h > 0 {
		return fmt.Sprintf("%dh%02dm", h, int(d%time.Hour/time.Minute))
	}
	return fmt.Sprintf("%dm", int(d/time.Minute))
}

// FormatClock renders t in loc as 15:04:05.
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--:--"
	}
	return t.In(loc).Format("15:04:05")
}

// Bar renders fraction (clamped to [0, 1]) as a width-cell bar.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
