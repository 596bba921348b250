package daylight

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidCoordinate is returned for a latitude outside [-90, 90], a
// longitude outside [-180, 180] or a non-finite value.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Result is the outcome of the daylight calculation for one date and place.
// All instants are UTC with whole-second precision.
type Result struct {
	TwilightMorning time.Time
	Sunrise         time.Time
	SolarNoon       time.Time
	Sunset          time.Time
	TwilightEvening time.Time

	// Declination of the sun in degrees. Does not depend on the observer.
	Declination float64

	// DayLength is the time between sunrise and sunset, 0 in polar night
	// and 24h in polar day.
	DayLength time.Duration

	// MaxAltitude is the altitude of the sun at solar noon in degrees.
	MaxAltitude float64
}

// Calculate returns civil twilight, sunrise, solar noon and sunset for the
// UTC date of t at the given position. Latitude is north positive and
// longitude east positive, both in degrees.
//
// The time of day of t matters only through the declination and equation
// of time, which are evaluated at t itself.
func Calculate(t time.Time, latitude, longitude float64) (Result, error) {
	if err := ValidateCoordinate(latitude, longitude); err != nil {
		return Result{}, err
	}
	return calculate(t, latitude, longitude), nil
}

// ValidateCoordinate reports whether latitude and longitude are finite and
// within their nominal ranges.
func ValidateCoordinate(latitude, longitude float64) error {
	switch {
	case math.IsNaN(latitude) || math.IsInf(latitude, 0):
		return fmt.Errorf("%w: latitude %v is not finite", ErrInvalidCoordinate, latitude)
	case math.IsNaN(longitude) || math.IsInf(longitude, 0):
		return fmt.Errorf("%w: longitude %v is not finite", ErrInvalidCoordinate, longitude)
	case math.Abs(latitude) > 90:
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, latitude)
	case math.Abs(longitude) > 180:
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, longitude)
	}
	return nil
}

// calculate is the unchecked formula. Non-finite input yields
// meaningless output without an error.
func calculate(t time.Time, latitude, longitude float64) Result {
	utc := t.UTC()
	d := DaysSince2000(utc)

	sun := solarCoordinates(d)
	lat := degToRad(latitude)

	ha := hourAngle(lat, sun.Declination, sunriseOffset)
	hb := hourAngle(lat, sun.Declination, twilightOffset)

	halfDay := 12 * ha / math.Pi
	twilight := 12 * (hb - ha) / math.Pi

	// Hours after UTC midnight.
	sunrise := 12 - halfDay - longitude/15 + sun.EquationOfTime
	sunset := 12 + halfDay - longitude/15 + sun.EquationOfTime
	noon := sunrise + halfDay

	altitude := math.Pi/2 + sun.Declination - lat
	if lat < sun.Declination {
		altitude = math.Pi - altitude
	}

	midnight := Midnight(utc)

	return Result{
		TwilightMorning: hoursToInstant(midnight, sunrise-twilight),
		Sunrise:         hoursToInstant(midnight, sunrise),
		SolarNoon:       hoursToInstant(midnight, noon),
		Sunset:          hoursToInstant(midnight, sunset),
		TwilightEvening: hoursToInstant(midnight, sunset+twilight),
		Declination:     radToDeg(sun.Declination),
		DayLength:       time.Duration(math.Floor(2*halfDay*3600)) * time.Second,
		MaxAltitude:     radToDeg(altitude),
	}
}

// Midnight returns 00:00 UTC of the UTC calendar date of t.
func Midnight(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// hoursToInstant converts fractional hours after midnight to an instant.
// Sub-second parts are dropped by truncating toward zero.
func hoursToInstant(midnight time.Time, hours float64) time.Time {
	return time.Unix(midnight.Unix()+int64(hours*3600), 0).UTC()
}
