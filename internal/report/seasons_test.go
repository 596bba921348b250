package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/litescript/daylight/internal/astro"
	"github.com/litescript/daylight/internal/location"
)

func TestSeasonRows(t *testing.T) {
	rows, err := SeasonRows(astro.SeasonsOf(2015), apeldoorn)
	if err != nil {
		t.Fatalf("SeasonRows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	equinox, summer, winter := rows[0].DayLength, rows[1].DayLength, rows[3].DayLength
	if equinox < 12*time.Hour || equinox > 12*time.Hour+20*time.Minute {
		t.Errorf("equinox day length = %v, want just over 12h", equinox)
	}
	if summer < 16*time.Hour+30*time.Minute || summer > 17*time.Hour {
		t.Errorf("June solstice day length = %v", summer)
	}
	if winter < 7*time.Hour+30*time.Minute || winter > 8*time.Hour {
		t.Errorf("December solstice day length = %v", winter)
	}
}

func TestSeasonRows_InvalidPlace(t *testing.T) {
	if _, err := SeasonRows(astro.SeasonsOf(2015), location.Place{Latitude: 91}); err == nil {
		t.Error("expected error for invalid latitude")
	}
}

func TestWriteSeasons(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSeasons(&buf, astro.SeasonsOf(2015), longyearbyen, time.UTC); err != nil {
		t.Fatalf("WriteSeasons() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Seasons 2015 at Longyearbyen",
		"March equinox",
		"June solstice",
		"24:00",
		"0:00",
		"December solstice",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
