package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
)

// SnapshotExport is the JSON-serializable form of a run of days.
type SnapshotExport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Place       location.Place `json:"place"`
	Days        []DayExport    `json:"days"`
}

// DayExport is one day's result. Instants are UTC.
type DayExport struct {
	Date             string    `json:"date"`
	TwilightMorning  time.Time `json:"twilight_morning"`
	Sunrise          time.Time `json:"sunrise"`
	SolarNoon        time.Time `json:"solar_noon"`
	Sunset           time.Time `json:"sunset"`
	TwilightEvening  time.Time `json:"twilight_evening"`
	Declination      float64   `json:"declination_deg"`
	DayLengthSeconds int64     `json:"day_length_seconds"`
	DayLength        string    `json:"day_length"`
	MaxAltitude      float64   `json:"max_altitude_deg"`
	PolarDay         bool      `json:"polar_day,omitempty"`
	PolarNight       bool      `json:"polar_night,omitempty"`
}

// ExportSnapshot converts results for consecutive UTC dates starting at
// start into an exportable form.
func ExportSnapshot(place location.Place, start time.Time, results []daylight.Result, generatedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt: generatedAt.UTC(),
		Place:       place,
		Days:        make([]DayExport, 0, len(results)),
	}

	first := daylight.Midnight(start)
	for i, r := range results {
		export.Days = append(export.Days, DayExport{
			Date:             first.AddDate(0, 0, i).Format(time.DateOnly),
			TwilightMorning:  r.TwilightMorning,
			Sunrise:          r.Sunrise,
			SolarNoon:        r.SolarNoon,
			Sunset:           r.Sunset,
			TwilightEvening:  r.TwilightEvening,
			Declination:      r.Declination,
			DayLengthSeconds: int64(r.DayLength / time.Second),
			DayLength:        FormatDayLength(r.DayLength),
			MaxAltitude:      r.MaxAltitude,
			PolarDay:         r.PolarDay(),
			PolarNight:       r.PolarNight(),
		})
	}

	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
