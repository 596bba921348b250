// Package state provides thread-safe state management for the application.
package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/litescript/daylight/internal/astro"
	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
)

// ErrNoPlace is returned by Update before a place has been set.
var ErrNoPlace = errors.New("no place set")

// EventType represents the type of state change event.
type EventType string

const (
	EventSun          EventType = "SUN"
	EventPlaceChanged EventType = "PLACE_CHANGED"
	EventDayRollover  EventType = "DAY_ROLLOVER"
)

// Event is a logged state change.
type Event struct {
	Type      EventType          `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Kind      daylight.EventKind `json:"kind,omitempty"`
	At        time.Time          `json:"at,omitempty"`
	Place     string             `json:"place,omitempty"`
}

// maxCatchUp bounds the span scanned for missed sun events, e.g. after
// the machine slept.
const maxCatchUp = 48 * time.Hour

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	place    location.Place
	hasPlace bool

	// Selected date as UTC midnight. It follows the current date until
	// the user picks one.
	date   time.Time
	follow bool

	// Computed by Update
	now         time.Time
	lastUpdate  time.Time
	lastError   error
	today       daylight.Result
	windowStart time.Time
	window      []daylight.Result
	trace       *astro.Trace
	seasons     astro.Seasons
	next        daylight.Event
	phase       daylight.Phase

	// Last instant scanned for sun events
	scannedUntil time.Time

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
	windowDays      int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration
	WindowDays      int // days shown in the calendar, centred on the selected date
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50,
		RefreshInterval: time.Second,
		WindowDays:      15,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 15
	}
	return &Manager{
		follow:          true,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		windowDays:      windowDays,
	}
}

// SetPlace validates and selects place. Computed data is refreshed on the
// next Update.
func (m *Manager) SetPlace(p location.Place) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	changed := !m.hasPlace || m.place != p
	m.place = p
	m.hasPlace = true
	if changed {
		m.trace = nil
		m.scannedUntil = time.Time{}
		m.addEvent(Event{
			Type:      EventPlaceChanged,
			Timestamp: time.Now(),
			Place:     p.String(),
		})
	}
	return nil
}

// Place returns the selected place and whether one is set.
func (m *Manager) Place() (location.Place, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.place, m.hasPlace
}

// SetDate selects the UTC date of day and stops following the current date.
func (m *Manager) SetDate(day time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.date = daylight.Midnight(day)
	m.follow = false
}

// ShiftDate moves the selected date by days.
func (m *Manager) ShiftDate(days int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := m.date
	if base.IsZero() {
		now := m.now
		if now.IsZero() {
			now = time.Now()
		}
		base = m.place.Today(now)
	}
	m.date = base.AddDate(0, 0, days)
	m.follow = false
}

// FollowToday makes the selected date track the current date at the place again.
func (m *Manager) FollowToday() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.follow = true
	if !m.now.IsZero() {
		m.date = m.place.Today(m.now)
	}
}

// Update recomputes everything for now: the selected day, the calendar
// window, the elevation trace, the seasons, the next event and the
// current phase. Sun events passed since the previous Update are logged.
func (m *Manager) Update(ctx context.Context, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now = now.UTC()
	m.lastUpdate = time.Now()

	if !m.hasPlace {
		m.lastError = ErrNoPlace
		return ErrNoPlace
	}

	err := m.recompute(ctx, now)
	m.lastError = err
	return err
}

func (m *Manager) recompute(ctx context.Context, now time.Time) error {
	lat, lon := m.place.Latitude, m.place.Longitude

	date := m.date
	if m.follow {
		date = m.place.Today(now)
	}

	midday := date.Add(12 * time.Hour)
	today, err := daylight.Calculate(midday, lat, lon)
	if err != nil {
		return fmt.Errorf("calculate %s: %w", date.Format(time.DateOnly), err)
	}

	start := midday.AddDate(0, 0, -m.windowDays/2)
	window, err := daylight.CalculateRange(ctx, start, m.windowDays, lat, lon)
	if err != nil {
		return fmt.Errorf("calendar window: %w", err)
	}

	next, err := daylight.NextEvent(now, lat, lon)
	if err != nil {
		return fmt.Errorf("next event: %w", err)
	}
	phase, err := daylight.CurrentPhase(now, lat, lon)
	if err != nil {
		return fmt.Errorf("phase: %w", err)
	}

	if err := m.detectSunEvents(now); err != nil {
		return err
	}

	// The selected day only moves once everything for it is computed.
	if m.follow && !m.date.IsZero() && !date.Equal(m.date) {
		m.addEvent(Event{
			Type:      EventDayRollover,
			Timestamp: now,
			At:        date,
			Place:     m.place.Name,
		})
	}
	m.date = date

	if m.trace == nil || !m.trace.Start.Equal(m.date) {
		obs := astro.Observer{LatDeg: lat, LonDeg: lon, Name: m.place.Name}
		m.trace = astro.ElevationTrace(m.date, obs, astro.DefaultTraceStep)
	}
	if m.seasons.Year != m.date.Year() {
		m.seasons = astro.SeasonsOf(m.date.Year())
	}

	m.now = now
	m.today = today
	m.windowStart = daylight.Midnight(start)
	m.window = window
	m.next = next
	m.phase = phase
	return nil
}

// detectSunEvents logs every sun event in (scannedUntil, now].
func (m *Manager) detectSunEvents(now time.Time) error {
	from := m.scannedUntil
	switch {
	case from.IsZero():
		m.scannedUntil = now
		return nil
	case !now.After(from):
		return nil
	}
	if now.Sub(from) > maxCatchUp {
		from = now.Add(-maxCatchUp)
	}

	events, err := sunEventsBetween(from, now, m.place.Latitude, m.place.Longitude)
	if err != nil {
		return fmt.Errorf("sun events: %w", err)
	}
	for _, ev := range events {
		m.addEvent(Event{
			Type:      EventSun,
			Timestamp: now,
			Kind:      ev.Kind,
			At:        ev.At,
			Place:     m.place.Name,
		})
	}
	m.scannedUntil = now
	return nil
}

// sunEventsBetween returns the sun events in (from, to] in time order.
func sunEventsBetween(from, to time.Time, lat, lon float64) ([]daylight.Event, error) {
	var out []daylight.Event
	first := daylight.Midnight(from).AddDate(0, 0, -1)
	last := daylight.Midnight(to).AddDate(0, 0, 1)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		r, err := daylight.Calculate(day.Add(12*time.Hour), lat, lon)
		if err != nil {
			return nil, err
		}
		for _, ev := range r.Events() {
			if ev.At.After(from) && !ev.At.After(to) {
				out = append(out, ev)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Place     location.Place
	HasPlace  bool
	Date      time.Time // selected date, the place's local date when following
	Following bool

	Now        time.Time
	LastUpdate time.Time
	LastError  error

	Today       daylight.Result
	WindowStart time.Time
	Window      []daylight.Result
	Trace       *astro.Trace // shared, never mutated after creation
	Seasons     astro.Seasons
	Next        daylight.Event
	Phase       daylight.Phase

	Events []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	window := make([]daylight.Result, len(m.window))
	copy(window, m.window)

	return Snapshot{
		Place:       m.place,
		HasPlace:    m.hasPlace,
		Date:        m.date,
		Following:   m.follow,
		Now:         m.now,
		LastUpdate:  m.lastUpdate,
		LastError:   m.lastError,
		Today:       m.today,
		WindowStart: m.windowStart,
		Window:      window,
		Trace:       m.trace,
		Seasons:     m.seasons,
		Next:        m.next,
		Phase:       m.phase,
		Events:      m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once an Update has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.now.IsZero()
}
