package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"2024-01-01 00:00 UTC", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
		{"zone is ignored", time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("EET", 2*3600)), 2460310.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := julianDate(tt.time); math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("julianDate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGreenwichMeanSiderealTime(t *testing.T) {
	gmst := greenwichMeanSiderealTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(gmst-280.46) > 0.1 {
		t.Errorf("GMST at J2000 = %v, want ~280.46", gmst)
	}
}

func TestLocalSiderealTime_Range(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 48; h += 5 {
		for _, lon := range []float64{-180, -117, 0, 5.97, 148.98, 180} {
			lst := localSiderealTime(base.Add(time.Duration(h)*time.Hour), lon)
			if lst < 0 || lst >= 360 {
				t.Errorf("LST(%dh, %v) = %v, outside [0, 360)", h, lon, lst)
			}
		}
	}
}

func TestEquatorialToHorizontal_Zenith(t *testing.T) {
	obs := Observer{LatDeg: 52.2, LonDeg: 5.97}
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// Dec equal to latitude and RA equal to LST puts a body overhead.
	body := SkyCoord{RAdeg: localSiderealTime(at, obs.LonDeg), DecDeg: obs.LatDeg}
	got := EquatorialToHorizontal(body, obs, at)

	if math.Abs(got.ElDeg-90) > 1e-6 {
		t.Errorf("elevation = %v°, want 90°", got.ElDeg)
	}
	if got.RAdeg != body.RAdeg || got.DecDeg != body.DecDeg {
		t.Error("RA/Dec should be preserved")
	}
}

func TestEquatorialToHorizontal_NeverRises(t *testing.T) {
	// Max elevation = 90 - 52 - 60 < 0.
	body := SkyCoord{RAdeg: 0, DecDeg: -60}
	obs := Observer{LatDeg: 52, LonDeg: 0}

	for hour := 0; hour < 24; hour += 3 {
		got := EquatorialToHorizontal(body, obs, time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC))
		if got.ElDeg > 0 {
			t.Errorf("hour %d: elevation %v° above horizon", hour, got.ElDeg)
		}
	}
}

func TestEquatorialToHorizontal_Pole(t *testing.T) {
	// At the pole elevation equals declination and azimuth is undefined.
	obs := Observer{LatDeg: 90, LonDeg: 0}
	got := EquatorialToHorizontal(SkyCoord{RAdeg: 45, DecDeg: 20}, obs, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	if math.Abs(got.ElDeg-20) > 1e-6 {
		t.Errorf("elevation = %v°, want 20°", got.ElDeg)
	}
	if math.IsNaN(got.AzDeg) {
		t.Error("azimuth is NaN at the pole")
	}
}

func TestEquatorialToHorizontal_AzimuthRange(t *testing.T) {
	obs := Observer{LatDeg: -35, LonDeg: 149}
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for ra := 0.0; ra < 360; ra += 30 {
		for dec := -80.0; dec <= 80; dec += 20 {
			got := EquatorialToHorizontal(SkyCoord{RAdeg: ra, DecDeg: dec}, obs, at)
			if got.AzDeg < 0 || got.AzDeg >= 360 {
				t.Errorf("RA=%v Dec=%v: azimuth %v outside [0, 360)", ra, dec, got.AzDeg)
			}
		}
	}
}
