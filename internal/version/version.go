// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Seasons tab, go-sunrise cross-check, places config
// 0.2.0 - Geo-IP lookup, calendar view, JSON export
// 0.1.0 - Initial release: daylight calculation, TUI today view, headless summary

// UserAgent is sent with outgoing HTTP requests.
func UserAgent() string {
	return "daylight/" + Version + " (Sunrise and Twilight Calculator)"
}
