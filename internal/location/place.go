// Package location resolves the place daylight is computed for: explicit
// coordinates, a YAML places file, environment variables or a geo-IP
// lookup.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // zone names must resolve without a system database

	"github.com/litescript/daylight/internal/daylight"
)

var (
	// ErrNotFound is returned when a provider has no place to offer.
	ErrNotFound = errors.New("location not found")

	// ErrNoProvider is returned when every provider in a chain failed.
	ErrNoProvider = errors.New("no location provider succeeded")
)

// Place is a named point on Earth with an optional IANA time zone used
// for display.
type Place struct {
	Name      string  `yaml:"name,omitempty" json:"name,omitempty"`
	Latitude  float64 `yaml:"lat" json:"latitude"`
	Longitude float64 `yaml:"lon" json:"longitude"`
	TimeZone  string  `yaml:"tz,omitempty" json:"time_zone,omitempty"`
}

// Validate checks the coordinates and, if set, the time zone name.
func (p Place) Validate() error {
	if err := daylight.ValidateCoordinate(p.Latitude, p.Longitude); err != nil {
		return fmt.Errorf("place %q: %w", p.Name, err)
	}
	if p.TimeZone != "" {
		if _, err := time.LoadLocation(p.TimeZone); err != nil {
			return fmt.Errorf("place %q: time zone: %w", p.Name, err)
		}
	}
	return nil
}

// Location returns the place's time zone, or UTC if none is set or the
// name cannot be loaded.
func (p Place) Location() *time.Location {
	if p.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the calendar date of now in the place's time zone, as a
// UTC midnight. Days are keyed by date, and a place east of Greenwich
// starts its day before UTC does.
func (p Place) Today(now time.Time) time.Time {
	y, m, d := now.In(p.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// String returns "Name (lat, lon)".
func (p Place) String() string {
	name := p.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s (%.4f, %.4f)", name, p.Latitude, p.Longitude)
}

// Provider supplies a place.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Locate returns the provider's place. Providers with nothing to offer
	// return an error wrapping ErrNotFound.
	Locate(ctx context.Context) (Place, error)
}

// Static always returns the same place.
type Static struct {
	Place Place
}

// Name implements Provider.
func (s Static) Name() string { return "static" }

// Locate implements Provider.
func (s Static) Locate(context.Context) (Place, error) {
	if err := s.Place.Validate(); err != nil {
		return Place{}, err
	}
	return s.Place, nil
}
