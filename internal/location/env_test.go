package location

import (
	"context"
	"errors"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvLatitude, EnvLongitude, EnvPlace, EnvTimeZone} {
		t.Setenv(k, "")
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLatitude, "52.2167")
	t.Setenv(EnvLongitude, "5.9667")
	t.Setenv(EnvPlace, "Apeldoorn")
	t.Setenv(EnvTimeZone, "Europe/Amsterdam")

	got, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	want := Place{Name: "Apeldoorn", Latitude: 52.2167, Longitude: 5.9667, TimeZone: "Europe/Amsterdam"}
	if got != want {
		t.Errorf("FromEnv() = %+v, want %+v", got, want)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lon     string
		wantErr error
	}{
		{"unset", "", "", ErrNotFound},
		{"only lat", "52", "", ErrNotFound},
		{"not a number", "north", "5", nil},
		{"out of range", "95", "5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvLatitude, tt.lat)
			t.Setenv(EnvLongitude, tt.lon)

			_, err := FromEnv()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnv_PlaceFromConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPlace, "svalbard")
	t.Setenv(EnvTimeZone, "Arctic/Longyearbyen")

	cfg, err := ParseConfig([]byte(samplePlaces))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Env{Config: cfg}.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if got.Latitude != 78.22 || got.TimeZone != "Arctic/Longyearbyen" {
		t.Errorf("Locate() = %+v", got)
	}
}

func TestEnv_NothingSet(t *testing.T) {
	clearEnv(t)
	_, err := Env{}.Locate(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
