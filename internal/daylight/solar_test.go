package daylight

import (
	"math"
	"testing"
	"time"
)

func TestDaysSince2000(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"epoch", J2000Midnight, 0},
		{"2015-03-27 noon", time.Date(2015, 3, 27, 12, 0, 0, 0, time.UTC), 5564.5},
		{"before epoch", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), -1},
		{"offset zone", time.Date(2015, 3, 27, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600)), 5564.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince2000(tt.time); got != tt.want {
				t.Errorf("DaysSince2000() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEclipticLongitude_Normalized(t *testing.T) {
	// -100 years to +100 years around the epoch.
	for d := -36525.0; d <= 36525; d += 97.3 {
		lambda, meanLon := eclipticLongitude(d)
		if lambda < 0 || lambda >= twoPi {
			t.Fatalf("d=%v: ecliptic longitude %v outside [0, 2π)", d, lambda)
		}
		if meanLon < 0 || meanLon >= twoPi {
			t.Fatalf("d=%v: mean longitude %v outside [0, 2π)", d, meanLon)
		}
	}
}

func TestSolarCoordinates_Seasons(t *testing.T) {
	tests := []struct {
		name           string
		time           time.Time
		wantDecMin     float64
		wantDecMax     float64
		wantEoTMinutes float64 // approximate mean minus apparent time
	}{
		{"March equinox", time.Date(2015, 3, 20, 12, 0, 0, 0, time.UTC), -0.5, 0.5, 7.4},
		{"June solstice", time.Date(2015, 6, 21, 12, 0, 0, 0, time.UTC), 23.3, 23.5, 1.8},
		{"September equinox", time.Date(2015, 9, 23, 12, 0, 0, 0, time.UTC), -0.5, 0.5, -7.7},
		{"December solstice", time.Date(2015, 12, 21, 12, 0, 0, 0, time.UTC), -23.5, -23.3, -1.8},
		{"early November", time.Date(2015, 11, 3, 12, 0, 0, 0, time.UTC), -16, -14, -16.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sun := solarCoordinates(DaysSince2000(tt.time))
			dec := radToDeg(sun.Declination)
			if dec < tt.wantDecMin || dec > tt.wantDecMax {
				t.Errorf("declination = %.3f°, want between %.1f° and %.1f°", dec, tt.wantDecMin, tt.wantDecMax)
			}
			eot := sun.EquationOfTime * 60
			if math.Abs(eot-tt.wantEoTMinutes) > 1.5 {
				t.Errorf("equation of time = %.2f min, want ≈ %.1f min", eot, tt.wantEoTMinutes)
			}
		})
	}
}

func TestSolarCoordinates_YearBoundaryContinuity(t *testing.T) {
	// The equation of time must not jump when mean longitude and right
	// ascension wrap at different moments.
	start := time.Date(2014, 12, 25, 0, 0, 0, 0, time.UTC)
	prev := solarCoordinates(DaysSince2000(start)).EquationOfTime
	for h := 1; h <= 24*20; h++ {
		eot := solarCoordinates(DaysSince2000(start.Add(time.Duration(h) * time.Hour))).EquationOfTime
		if math.Abs(eot-prev) > 0.01 {
			t.Fatalf("equation of time jumped from %v to %v h at +%dh", prev, eot, h)
		}
		prev = eot
	}
}

func TestHourAngle(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		decl    float64
		offset  float64
		want    float64
		epsilon float64
	}{
		{"equator at equinox", 0, 0, sunriseOffset, math.Pi / 2, 1e-12},
		{"polar night clamps to zero", degToRad(78.22), degToRad(-23.44), sunriseOffset, 0, 1e-12},
		{"polar day clamps to pi", degToRad(78.22), degToRad(23.44), sunriseOffset, math.Pi, 1e-12},
		{"southern polar day", degToRad(-78.22), degToRad(-23.44), sunriseOffset, math.Pi, 1e-12},
		{"southern polar night", degToRad(-78.22), degToRad(23.44), sunriseOffset, 0, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hourAngle(tt.lat, tt.decl, tt.offset)
			if math.Abs(got-tt.want) > tt.epsilon {
				t.Errorf("hourAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHourAngle_HemisphereSymmetry(t *testing.T) {
	// Mirroring latitude and declination must give the same hour angle.
	for lat := 5.0; lat < 66; lat += 7 {
		for decl := -23.0; decl <= 23; decl += 4.6 {
			north := hourAngle(degToRad(lat), degToRad(decl), sunriseOffset)
			south := hourAngle(degToRad(-lat), degToRad(-decl), sunriseOffset)
			if math.Abs(north-south) > 1e-12 {
				t.Errorf("lat=%v decl=%v: north %v != south %v", lat, decl, north, south)
			}
		}
	}
}

func TestHourAngle_TwilightWiderThanSunrise(t *testing.T) {
	for lat := -89.0; lat <= 89; lat += 4 {
		for decl := -23.4; decl <= 23.4; decl += 2.6 {
			ha := hourAngle(degToRad(lat), degToRad(decl), sunriseOffset)
			hb := hourAngle(degToRad(lat), degToRad(decl), twilightOffset)
			if hb < ha {
				t.Fatalf("lat=%v decl=%v: twilight hour angle %v < sunrise hour angle %v", lat, decl, hb, ha)
			}
		}
	}
}
