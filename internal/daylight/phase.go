package daylight

import (
	"fmt"
	"time"
)

// Phase is the part of the day the sun is in.
type Phase int

const (
	PhaseNight Phase = iota
	PhaseMorningTwilight
	PhaseDay
	PhaseEveningTwilight
)

func (p Phase) String() string {
	switch p {
	case PhaseNight:
		return "night"
	case PhaseMorningTwilight:
		return "morning twilight"
	case PhaseDay:
		return "day"
	case PhaseEveningTwilight:
		return "evening twilight"
	default:
		return "unknown"
	}
}

// PhaseAt returns the phase at t according to r. Times outside the day r
// was computed for are classified against r's instants as is.
func (r Result) PhaseAt(t time.Time) Phase {
	switch {
	case t.Before(r.TwilightMorning):
		return PhaseNight
	case t.Before(r.Sunrise):
		return PhaseMorningTwilight
	case t.Before(r.Sunset):
		return PhaseDay
	case t.Before(r.TwilightEvening):
		return PhaseEveningTwilight
	default:
		return PhaseNight
	}
}

// PolarNight reports whether the sun stays below the horizon all day.
func (r Result) PolarNight() bool {
	return r.DayLength <= 0
}

// PolarDay reports whether the sun stays above the horizon all day.
func (r Result) PolarDay() bool {
	return r.DayLength >= 24*time.Hour
}

// EventKind names a sun event.
type EventKind string

const (
	EventTwilightMorning EventKind = "twilight-morning"
	EventSunrise         EventKind = "sunrise"
	EventSolarNoon       EventKind = "noon"
	EventSunset          EventKind = "sunset"
	EventTwilightEvening EventKind = "twilight-evening"
)

// Event is a sun event at an instant.
type Event struct {
	Kind EventKind `json:"kind"`
	At   time.Time `json:"at"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.At.Format(time.RFC3339), e.Kind)
}

// Events returns the events that really happen on r's day, in order.
// Collapsed instants are left out: no sunrise or sunset during polar day
// or night, no twilight when it has zero length. Solar noon is always
// present.
func (r Result) Events() []Event {
	events := make([]Event, 0, 5)
	if r.TwilightMorning.Before(r.Sunrise) {
		events = append(events, Event{EventTwilightMorning, r.TwilightMorning})
	}
	crossesHorizon := !r.PolarNight() && !r.PolarDay()
	if crossesHorizon {
		events = append(events, Event{EventSunrise, r.Sunrise})
	}
	events = append(events, Event{EventSolarNoon, r.SolarNoon})
	if crossesHorizon {
		events = append(events, Event{EventSunset, r.Sunset})
	}
	if r.TwilightEvening.After(r.Sunset) {
		events = append(events, Event{EventTwilightEvening, r.TwilightEvening})
	}
	return events
}

// NextEvent returns the first sun event strictly after now at the given
// position. Each date is evaluated at 12:00 UTC so that the answer does
// not drift as now advances.
//
// Far from Greenwich a UTC date's events spill into the neighbouring
// dates, and in white nights one date's evening twilight can end after the
// next date's morning twilight begins. All events from yesterday to the
// day after tomorrow are therefore compared by time, not by date.
func NextEvent(now time.Time, latitude, longitude float64) (Event, error) {
	events, err := eventsAround(now, -1, 2, latitude, longitude)
	if err != nil {
		return Event{}, err
	}

	var next Event
	found := false
	for _, ev := range events {
		if ev.At.After(now) && (!found || ev.At.Before(next.At)) {
			next, found = ev, true
		}
	}
	if !found {
		// Solar noon happens every day, so this is unreachable for valid input.
		return Event{}, fmt.Errorf("no sun event found after %s", now.Format(time.RFC3339))
	}
	return next, nil
}

// PreviousEvent returns the last sun event at or before now.
func PreviousEvent(now time.Time, latitude, longitude float64) (Event, error) {
	events, err := eventsAround(now, -2, 1, latitude, longitude)
	if err != nil {
		return Event{}, err
	}

	var prev Event
	found := false
	for _, ev := range events {
		if !ev.At.After(now) && (!found || ev.At.After(prev.At)) {
			prev, found = ev, true
		}
	}
	if !found {
		return Event{}, fmt.Errorf("no sun event found before %s", now.Format(time.RFC3339))
	}
	return prev, nil
}

// eventsAround returns the events of the UTC dates from, to days away from
// now's date, in date order.
func eventsAround(now time.Time, from, to int, latitude, longitude float64) ([]Event, error) {
	var events []Event
	for offset := from; offset <= to; offset++ {
		r, err := Calculate(middayOf(now, offset), latitude, longitude)
		if err != nil {
			return nil, err
		}
		events = append(events, r.Events()...)
	}
	return events, nil
}

// CurrentPhase returns the phase of the day at now for the given position.
// Like NextEvent it looks at the neighbouring UTC dates, since the
// twilight-to-twilight span of one date can start on the previous one.
func CurrentPhase(now time.Time, latitude, longitude float64) (Phase, error) {
	for offset := -1; offset <= 1; offset++ {
		r, err := Calculate(middayOf(now, offset), latitude, longitude)
		if err != nil {
			return PhaseNight, err
		}
		if !now.Before(r.TwilightMorning) && now.Before(r.TwilightEvening) {
			return r.PhaseAt(now), nil
		}
	}
	return PhaseNight, nil
}

// middayOf returns 12:00 UTC of the UTC date of t shifted by days.
func middayOf(t time.Time, days int) time.Time {
	return Midnight(t).AddDate(0, 0, days).Add(12 * time.Hour)
}
