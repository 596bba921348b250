package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/daylight/internal/daylight"
	"github.com/litescript/daylight/internal/location"
	"github.com/litescript/daylight/internal/state"
)

var apeldoorn = location.Place{
	Name:      "Apeldoorn",
	Latitude:  52.0 + 13.0/60.0,
	Longitude: 5.0 + 58.0/60.0,
}

var noon = time.Date(2015, 3, 27, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	if err := mgr.SetPlace(apeldoorn); err != nil {
		t.Fatalf("SetPlace() error = %v", err)
	}
	if err := mgr.Update(context.Background(), noon); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	m := New(mgr).WithClock(func() time.Time { return noon })
	m.setSnapshot(mgr.Snapshot())
	return m
}

func sendKey(m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(key)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before WindowSizeMsg = %q", got)
	}
}

func TestModel_ViewToday(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"daylight", "[1] Today", "Apeldoorn", "Sunrise", "05:22:46", "18:00:07", "12:37", "sunset in"} {
		if !strings.Contains(view, want) {
			t.Errorf("today view missing %q", want)
		}
	}
}

func TestModel_ViewTodayFarEast(t *testing.T) {
	sydney := location.Place{Name: "Sydney", Latitude: -33.87, Longitude: 151.21, TimeZone: "Australia/Sydney"}
	now := time.Date(2021, 9, 1, 23, 0, 0, 0, time.UTC) // Thu 09:00 in Sydney

	mgr := state.NewManager(state.DefaultConfig())
	if err := mgr.SetPlace(sydney); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Update(context.Background(), now); err != nil {
		t.Fatal(err)
	}
	m := New(mgr).WithClock(func() time.Time { return now })
	m.setSnapshot(mgr.Snapshot())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if view := m.View(); !strings.Contains(view, "Thu Sep 2 2021") {
		t.Errorf("today view not labelled with the local date:\n%s", view)
	}

	snap := m.snapshot
	start := localMidnight(snap.Date, sydney.Location())
	cell := nowCell(start, now, TimelineWidth)
	if cell != 18 {
		t.Fatalf("nowCell() = %d, want 18", cell)
	}
	if got := timelinePhases(snap.Today, start, TimelineWidth)[cell]; got != daylight.PhaseDay {
		t.Errorf("timeline at now = %v, want %v", got, daylight.PhaseDay)
	}
}

func TestModel_ScrollKeysOnlyInCalendar(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 16})
	m = updated.(Model)
	before := m.calendar.scroll

	m, _ = sendKey(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.calendar.scroll != before {
		t.Errorf("up in today view scrolled the calendar to %d", m.calendar.scroll)
	}

	m, _ = sendKey(m, runes("2"))
	m, _ = sendKey(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.calendar.scroll != before-1 {
		t.Errorf("up in calendar view: scroll = %d, want %d", m.calendar.scroll, before-1)
	}
}

func TestModel_SwitchViews(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want ViewMode
	}{
		{runes("2"), ViewCalendar},
		{runes("3"), ViewSeasons},
		{runes("1"), ViewToday},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewCalendar},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewSeasons},
		{tea.KeyMsg{Type: tea.KeyTab}, ViewToday},
	}

	for _, tt := range tests {
		m, _ = sendKey(m, tt.key)
		if m.ActiveView() != tt.want {
			t.Errorf("after %q: view = %v, want %v", tt.key.String(), m.ActiveView(), tt.want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := sendKey(m, key)
		if cmd == nil {
			t.Fatalf("%q returned no command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", key.String())
		}
	}
}

func TestModel_DateNavigation(t *testing.T) {
	m := newTestModel(t)

	m, _ = sendKey(m, runes("l"))
	if want := time.Date(2015, 3, 28, 0, 0, 0, 0, time.UTC); !m.snapshot.Date.Equal(want) {
		t.Errorf("after l: Date = %v, want %v", m.snapshot.Date, want)
	}
	if m.snapshot.Following {
		t.Error("after l: still following today")
	}

	m, _ = sendKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = sendKey(m, runes("h"))
	if want := time.Date(2015, 3, 26, 0, 0, 0, 0, time.UTC); !m.snapshot.Date.Equal(want) {
		t.Errorf("after left, h: Date = %v, want %v", m.snapshot.Date, want)
	}

	m, _ = sendKey(m, runes("t"))
	if want := time.Date(2015, 3, 27, 0, 0, 0, 0, time.UTC); !m.snapshot.Date.Equal(want) {
		t.Errorf("after t: Date = %v, want %v", m.snapshot.Date, want)
	}
	if !m.snapshot.Following {
		t.Error("after t: not following today")
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated, _ = updated.(Model).Update(ErrorMsg{Error: context.DeadlineExceeded})
	if view := updated.(Model).View(); !strings.Contains(view, "ERROR: context deadline exceeded") {
		t.Error("footer does not show the error")
	}
}

func TestTimelinePhases(t *testing.T) {
	r, err := daylight.Calculate(noon, apeldoorn.Latitude, apeldoorn.Longitude)
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2015, 3, 27, 0, 0, 0, 0, time.UTC)
	phases := timelinePhases(r, start, 48)

	counts := make(map[daylight.Phase]int)
	for _, p := range phases {
		counts[p]++
	}

	want := map[daylight.Phase]int{
		daylight.PhaseNight:           21,
		daylight.PhaseMorningTwilight: 1,
		daylight.PhaseDay:             25,
		daylight.PhaseEveningTwilight: 1,
	}
	for p, n := range want {
		if counts[p] != n {
			t.Errorf("%v cells = %d, want %d", p, counts[p], n)
		}
	}
	if phases[0] != daylight.PhaseNight || phases[47] != daylight.PhaseNight {
		t.Error("timeline should start and end in night")
	}
	if got := timelinePhases(r, start, 0); got != nil {
		t.Errorf("width 0 = %v, want nil", got)
	}
}

func TestNowCell(t *testing.T) {
	start := time.Date(2015, 3, 27, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"midnight", start, 0},
		{"noon", noon, 24},
		{"last cell", start.Add(24*time.Hour - time.Second), 47},
		{"before", start.Add(-time.Second), -1},
		{"next day", start.Add(24 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nowCell(start, tt.now, 48); got != tt.want {
				t.Errorf("nowCell() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResampleElevation(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  []float64
	}{
		{"shorter than width", []float64{1, 2, 3}, 5, []float64{1, 2, 3}},
		{"halve", []float64{1, 2, 3, 4}, 2, []float64{1.5, 3.5}},
		{"thirds", []float64{0, 0, 0, 3, 3, 3, 6, 6, 6}, 3, []float64{0, 3, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resampleElevation(tt.data, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSparklineBlock(t *testing.T) {
	tests := []struct {
		el, minEl, maxEl float64
		want             rune
	}{
		{-35, -35, 40, '▁'},
		{40, -35, 40, '█'},
		{2.5, -35, 40, '▄'},
		{10, 10, 10, '▁'},
		{99, 0, 10, '█'},
	}

	for _, tt := range tests {
		if got := sparklineBlock(tt.el, tt.minEl, tt.maxEl); got != tt.want {
			t.Errorf("sparklineBlock(%v, %v, %v) = %q, want %q", tt.el, tt.minEl, tt.maxEl, got, tt.want)
		}
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 1); got != "#F4A261" {
		t.Errorf("single column = %s", got)
	}
	if got := gradientColor(0, 10); got != "#4834D4" {
		t.Errorf("first column = %s, want #4834D4", got)
	}
	if got := gradientColor(9, 10); got != "#F4D35E" {
		t.Errorf("last column = %s, want #F4D35E", got)
	}
}

func TestCalendar_ScrollBounds(t *testing.T) {
	m := newTestModel(t)
	cal := NewCalendarModel().SetSize(80, 10) // 4 visible rows
	cal = cal.UpdateData(m.snapshot)

	if len(cal.snap.Window) != 15 {
		t.Fatalf("window = %d days, want 15", len(cal.snap.Window))
	}
	// Selected date is row 7, scrolled so it is the last visible row.
	if cal.scroll != 4 {
		t.Errorf("initial scroll = %d, want 4", cal.scroll)
	}

	for i := 0; i < 20; i++ {
		cal, _ = cal.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if cal.scroll != 11 {
		t.Errorf("scroll after many downs = %d, want 11", cal.scroll)
	}

	for i := 0; i < 20; i++ {
		cal, _ = cal.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if cal.scroll != 0 {
		t.Errorf("scroll after many ups = %d, want 0", cal.scroll)
	}
}

func TestCalendar_View(t *testing.T) {
	m := newTestModel(t)
	cal := m.calendar.SetSize(120, 30).UpdateData(m.snapshot)

	view := cal.View()
	for _, want := range []string{"15 days around Mar 27 2015", "Fri Mar 27", "▶", "05:22:46", "+4m03s"} {
		if !strings.Contains(view, want) {
			t.Errorf("calendar view missing %q", want)
		}
	}

	empty := NewCalendarModel().View()
	if !strings.Contains(empty, "No days") {
		t.Errorf("empty calendar view = %q", empty)
	}
}

func TestSeasons_View(t *testing.T) {
	m := newTestModel(t)
	s := m.seasons.SetSize(120, 30).UpdateData(m.snapshot)

	if len(s.rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(s.rows))
	}
	view := s.View()
	for _, want := range []string{"Seasons 2015", "March equinox", "June solstice", "16:4", "December solstice", "7:4"} {
		if !strings.Contains(view, want) {
			t.Errorf("seasons view missing %q", want)
		}
	}
	if s.nextRow() != "June solstice" {
		t.Errorf("nextRow() = %q, want June solstice", s.nextRow())
	}
}

func TestCountdownDays(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "45m"},
		{30 * time.Hour, "1 day"},
		{86 * 24 * time.Hour, "86 days"},
	}
	for _, tt := range tests {
		if got := countdownDays(tt.d); got != tt.want {
			t.Errorf("countdownDays(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	k := defaultKeyMap()
	if got := len(k.ShortHelp()); got != 5 {
		t.Errorf("ShortHelp() = %d bindings, want 5", got)
	}
	k.showScroll = true
	if got := len(k.ShortHelp()); got != 6 {
		t.Errorf("ShortHelp() with scroll = %d bindings, want 6", got)
	}
}

func TestModel_FooterHelp(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m = updated.(Model)

	if footer := m.renderFooter(); strings.Contains(footer, "scroll") {
		t.Error("today footer should not offer scrolling")
	}
	m, _ = sendKey(m, runes("2"))
	footer := m.renderFooter()
	for _, want := range []string{"scroll", "quit", "prev day"} {
		if !strings.Contains(footer, want) {
			t.Errorf("calendar footer missing %q", want)
		}
	}
}
