// Package astro provides precise solar geometry: apparent sun position,
// horizontal coordinates for an observer, altitude traces over a day and
// the dates of equinoxes and solstices.
//
// It is used for display and cross-checking. The daylight package does not
// depend on it.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// SkyCoord holds equatorial (RA/Dec) and horizontal (Az/El) coordinates of
// one body.
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation in degrees (0=horizon, 90=zenith)
}

// Observer is a place on the ground.
type Observer struct {
	LatDeg float64 // north positive
	LonDeg float64 // east positive
	Name   string
}

// EquatorialToHorizontal fills in Az/El of eq as seen by obs at t.
// RA/Dec are copied through unchanged.
func EquatorialToHorizontal(eq SkyCoord, obs Observer, t time.Time) SkyCoord {
	lat := degToRad(obs.LatDeg)
	dec := degToRad(eq.DecDeg)

	ha := degToRad(localSiderealTime(t, obs.LonDeg) - eq.RAdeg)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clamp(sinAlt, -1, 1))

	// cos(alt)·cos(lat) vanishes at the poles and the zenith; azimuth is
	// undefined there and any value will do.
	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	az := math.Acos(clamp(cosAz, -1, 1))
	if math.IsNaN(az) {
		az = 0
	}

	// West of the meridian.
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return SkyCoord{
		RAdeg:  eq.RAdeg,
		DecDeg: eq.DecDeg,
		AzDeg:  normalizeAngle360(radToDeg(az)),
		ElDeg:  radToDeg(alt),
	}
}

// localSiderealTime returns the local sidereal time in degrees [0, 360).
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeAngle360(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime returns GMST in degrees (IAU 1982).
func greenwichMeanSiderealTime(t time.Time) float64 {
	return normalizeAngle360(sidereal.Mean(julianDate(t)).Angle().Deg())
}

// julianDate returns the Julian Date of t.
func julianDate(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
