package daylight

import (
	"math"
	"time"
)

// Empirical almanac constants. They are truncations of the solar mean
// orbit series and must stay exactly as written.
const (
	sunRadiusDeg       = 0.53
	refractionDeg      = 34.0 / 60.0
	civilDepressionDeg = 6.0

	meanLongitudeDeg     = 280.461
	meanLongitudeRateDeg = 0.9856474
	meanAnomalyDeg       = 357.528
	meanAnomalyRateDeg   = 0.9856003
	centerTerm1Deg       = 1.915
	centerTerm2Deg       = 0.02
	obliquityDeg         = 23.439
	obliquityRateDeg     = 0.0000004

	secondsPerDay = 24 * 3600
)

// J2000Midnight is the reference epoch, 2000-01-01 00:00 UTC.
var J2000Midnight = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DaysSince2000 returns the days, including fraction, elapsed between
// J2000Midnight and t.
func DaysSince2000(t time.Time) float64 {
	return t.UTC().Sub(J2000Midnight).Seconds() / secondsPerDay
}

// eclipticLongitude returns the ecliptic longitude and the mean longitude of
// the sun, both in radians within [0, 2π), d days after J2000Midnight.
func eclipticLongitude(d float64) (lambda, meanLongitude float64) {
	meanLongitude = normalizeAngle(degToRad(meanLongitudeDeg) + degToRad(meanLongitudeRateDeg)*d)
	g := normalizeAngle(degToRad(meanAnomalyDeg) + degToRad(meanAnomalyRateDeg)*d)

	lambda = normalizeAngle(meanLongitude +
		degToRad(centerTerm1Deg)*math.Sin(g) +
		degToRad(centerTerm2Deg)*math.Sin(2*g))
	return lambda, meanLongitude
}

// SolarCoordinates holds the equatorial position of the sun for one moment.
type SolarCoordinates struct {
	EclipticLongitude float64 // radians
	Obliquity         float64 // radians
	RightAscension    float64 // radians, (-π, π]
	Declination       float64 // radians

	// EquationOfTime is mean minus apparent solar time, in hours: the
	// correction added to a mean-time event to get its UTC time.
	EquationOfTime float64
}

// solarCoordinates derives the sun's right ascension, declination and the
// equation of time d days after J2000Midnight.
func solarCoordinates(d float64) SolarCoordinates {
	lambda, meanLongitude := eclipticLongitude(d)

	obliq := degToRad(obliquityDeg) - degToRad(obliquityRateDeg)*d

	alpha := math.Atan2(math.Cos(obliq)*math.Sin(lambda), math.Cos(lambda))
	delta := math.Asin(math.Sin(obliq) * math.Sin(lambda))

	// Both angles are close to each other; without the extra turn the
	// difference jumps by -2π around the start of the year.
	corr := meanLongitude - alpha
	if corr < math.Pi {
		corr += twoPi
	}

	return SolarCoordinates{
		EclipticLongitude: lambda,
		Obliquity:         obliq,
		RightAscension:    alpha,
		Declination:       delta,
		EquationOfTime:    24 * (1 - corr/twoPi),
	}
}
