package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solstice"
)

// Seasons holds the equinox and solstice instants of one year.
// Instants are in Terrestrial Time reported as UTC, which runs about a
// minute ahead of civil UTC in this century.
type Seasons struct {
	Year             int
	MarchEquinox     time.Time
	JuneSolstice     time.Time
	SeptemberEquinox time.Time
	DecemberSolstice time.Time
}

// SeasonEvent is one named equinox or solstice.
type SeasonEvent struct {
	Name string
	At   time.Time
}

// SeasonsOf computes the equinoxes and solstices of year.
func SeasonsOf(year int) Seasons {
	return Seasons{
		Year:             year,
		MarchEquinox:     jdeToTime(solstice.March(year)),
		JuneSolstice:     jdeToTime(solstice.June(year)),
		SeptemberEquinox: jdeToTime(solstice.September(year)),
		DecemberSolstice: jdeToTime(solstice.December(year)),
	}
}

// Events returns the four instants in calendar order.
func (s Seasons) Events() []SeasonEvent {
	return []SeasonEvent{
		{Name: "March equinox", At: s.MarchEquinox},
		{Name: "June solstice", At: s.JuneSolstice},
		{Name: "September equinox", At: s.SeptemberEquinox},
		{Name: "December solstice", At: s.DecemberSolstice},
	}
}

func jdeToTime(jde float64) time.Time {
	return julian.JDToTime(jde).UTC().Truncate(time.Second)
}
