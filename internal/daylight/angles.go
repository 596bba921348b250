// Package daylight computes civil twilight, sunrise, solar noon and sunset
// for a date and a position on Earth.
//
// The model is a low-order solar almanac good to about a minute. All
// returned instants are UTC.
package daylight

import "math"

const twoPi = 2 * math.Pi

// normalizeAngle maps an angle in radians into [0, 2π).
// Mean longitude and anomaly grow by ~360° a year, so x can be many turns
// away from zero; the floor division keeps the result exact there.
func normalizeAngle(x float64) float64 {
	b := 0.5 * x / math.Pi
	a := twoPi * (b - math.Floor(b))
	if a < 0 {
		a += twoPi
	}
	return a
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// clampUnit clamps x to [-1, 1] so it is always a valid asin argument.
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
