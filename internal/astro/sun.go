package astro

import (
	"math"
	"time"
)

// SunPosition returns the apparent equatorial coordinates of the Sun in
// degrees. It follows the low-precision solar ephemeris of the
// Astronomical Almanac: ~0.01° in RA and ~0.001° in Dec.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	// Julian centuries from J2000.0
	T := (julianDate(t) - 2451545.0) / 36525.0

	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := degToRad(normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	// Aberration and nutation in longitude.
	omega := degToRad(125.04 - 1934.136*T)
	lon := degToRad(L0 + C - 0.00569 - 0.00478*math.Sin(omega))

	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := degToRad(eps0 + 0.00256*math.Cos(omega))

	ra := math.Atan2(math.Cos(eps)*math.Sin(lon), math.Cos(lon))
	dec := math.Asin(math.Sin(eps) * math.Sin(lon))

	return normalizeAngle360(radToDeg(ra)), radToDeg(dec)
}

// SunHorizontal returns the position of the Sun as seen by obs at t.
func SunHorizontal(t time.Time, obs Observer) SkyCoord {
	ra, dec := SunPosition(t)
	return EquatorialToHorizontal(SkyCoord{RAdeg: ra, DecDeg: dec}, obs, t)
}

// SunElevation returns the geometric elevation of the Sun's centre in
// degrees, without refraction.
func SunElevation(t time.Time, obs Observer) float64 {
	return SunHorizontal(t, obs).ElDeg
}

// Elevation thresholds in degrees for the Sun's centre.
const (
	// HorizonElevation is sunrise/sunset: half the disc plus refraction
	// below the geometric horizon.
	HorizonElevation = -0.833

	// CivilElevation is the end of civil twilight.
	CivilElevation = -6.0
)

// SkyTier classifies the Sun's elevation for display.
type SkyTier int

const (
	SkyNight    SkyTier = iota // below civil twilight
	SkyTwilight                // civil twilight
	SkyLow                     // up to 15°
	SkyMedium                  // 15-45°
	SkyHigh                    // 45° and above
)

// TierFor returns the tier for a solar elevation in degrees.
func TierFor(elDeg float64) SkyTier {
	switch {
	case elDeg < CivilElevation:
		return SkyNight
	case elDeg < HorizonElevation:
		return SkyTwilight
	case elDeg < 15:
		return SkyLow
	case elDeg < 45:
		return SkyMedium
	default:
		return SkyHigh
	}
}
