package location

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by Env.
const (
	EnvLatitude  = "DAYLIGHT_LAT"
	EnvLongitude = "DAYLIGHT_LON"
	EnvPlace     = "DAYLIGHT_PLACE"
	EnvTimeZone  = "DAYLIGHT_TZ"
)

// Env reads a place from the environment. DAYLIGHT_LAT and DAYLIGHT_LON
// give coordinates directly; otherwise DAYLIGHT_PLACE names a place in
// Config. DAYLIGHT_TZ overrides the time zone in both cases.
type Env struct {
	Config *Config
}

// Name implements Provider.
func (e Env) Name() string { return "env" }

// Locate implements Provider.
func (e Env) Locate(context.Context) (Place, error) {
	place, err := FromEnv()
	if err == nil {
		return place, nil
	}

	name := os.Getenv(EnvPlace)
	if name == "" || e.Config == nil {
		return Place{}, err
	}

	place, err = e.Config.Lookup(name)
	if err != nil {
		return Place{}, err
	}
	if tz := os.Getenv(EnvTimeZone); tz != "" {
		place.TimeZone = tz
	}
	return place, place.Validate()
}

// FromEnv builds a place from DAYLIGHT_LAT and DAYLIGHT_LON.
func FromEnv() (Place, error) {
	latStr, lonStr := os.Getenv(EnvLatitude), os.Getenv(EnvLongitude)
	if latStr == "" || lonStr == "" {
		return Place{}, fmt.Errorf("%s/%s unset: %w", EnvLatitude, EnvLongitude, ErrNotFound)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Place{}, fmt.Errorf("%s: %w", EnvLatitude, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Place{}, fmt.Errorf("%s: %w", EnvLongitude, err)
	}

	place := Place{
		Name:      os.Getenv(EnvPlace),
		Latitude:  lat,
		Longitude: lon,
		TimeZone:  os.Getenv(EnvTimeZone),
	}
	if err := place.Validate(); err != nil {
		return Place{}, err
	}
	return place, nil
}
