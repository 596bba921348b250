package daylight

import "math"

const (
	// sunriseOffset puts the sun's upper limb on the horizon after refraction.
	sunriseOffset = (0.5*sunRadiusDeg + refractionDeg) * math.Pi / 180

	// twilightOffset is the civil twilight depression.
	twilightOffset = civilDepressionDeg * math.Pi / 180
)

// hourAngle returns the hour angle, in radians, at which the sun crosses the
// altitude given by offset. All arguments are radians.
//
// The result lies in [0, π]. When the sun never reaches the threshold the
// clamp yields 0 (polar night); when it never drops below it, π (polar day).
func hourAngle(lat, decl, offset float64) float64 {
	// Southern hemisphere needs the offset the other way round.
	if math.Signbit(lat) {
		offset = -offset
	}
	f := math.Tan(decl+offset) * math.Tan(lat)
	return math.Asin(clampUnit(f)) + math.Pi/2
}
