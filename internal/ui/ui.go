// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/daylight/internal/state"
	"github.com/litescript/daylight/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewToday ViewMode = iota
	ViewCalendar
	ViewSeasons

	viewCount
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a fresh state snapshot.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a background error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	clock func() time.Time

	keys keyMap
	help help.Model

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int
	lastErr  error

	// Sub-models
	today    TodayModel
	calendar CalendarModel
	seasons  SeasonsModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:    stateMgr,
		clock:    time.Now,
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewMode: ViewToday,
		today:    NewTodayModel(),
		calendar: NewCalendarModel(),
		seasons:  NewSeasonsModel(),
	}
}

// WithClock replaces the time source, for tests and replays.
func (m Model) WithClock(clock func() time.Time) Model {
	m.clock = clock
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Today):
			m.viewMode = ViewToday
		case key.Matches(msg, m.keys.Calendar):
			m.viewMode = ViewCalendar
		case key.Matches(msg, m.keys.Seasons):
			m.viewMode = ViewSeasons
		case key.Matches(msg, m.keys.NextView):
			m.viewMode = (m.viewMode + 1) % viewCount

		case key.Matches(msg, m.keys.PrevDay):
			m.state.ShiftDate(-1)
			m.refresh()
		case key.Matches(msg, m.keys.NextDay):
			m.state.ShiftDate(1)
			m.refresh()
		case key.Matches(msg, m.keys.Follow):
			m.state.FollowToday()
			m.refresh()

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}
		m.keys.showScroll = m.viewMode == ViewCalendar

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header ~4 lines, footer ~2 lines
		contentHeight := msg.Height - 6
		m.today = m.today.SetSize(msg.Width, contentHeight)
		m.calendar = m.calendar.SetSize(msg.Width, contentHeight)
		m.seasons = m.seasons.SetSize(msg.Width, contentHeight)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.lastErr = nil
		m.setSnapshot(msg.Snapshot)

	case ErrorMsg:
		m.lastErr = msg.Error

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// refresh recomputes state after a date change so the view does not wait
// for the next background update.
func (m *Model) refresh() {
	if err := m.state.Update(context.Background(), m.clock()); err != nil {
		m.lastErr = err
	} else {
		m.lastErr = nil
	}
	m.setSnapshot(m.state.Snapshot())
}

func (m *Model) setSnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.today = m.today.UpdateData(snap)
	m.calendar = m.calendar.UpdateData(snap)
	m.seasons = m.seasons.UpdateData(snap)
}

// updateActiveView forwards msg to the calendar, the only view with its own
// key handling.
func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	if m.viewMode != ViewCalendar {
		return nil
	}
	var cmd tea.Cmd
	m.calendar, cmd = m.calendar.Update(msg)
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewToday:
		content = m.today.View()
	case ViewCalendar:
		content = m.calendar.View()
	case ViewSeasons:
		content = m.seasons.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

// ActiveView returns the current view mode.
func (m Model) ActiveView() ViewMode {
	return m.viewMode
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n  ")
	title := "☀ daylight"
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, len(runes))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · sunrise, sunset and civil twilight", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color along a dawn gradient:
// indigo -> rose -> amber.
func gradientColor(col, width int) string {
	if width <= 1 {
		return "#F4A261"
	}
	x := float64(col) / float64(width-1)

	var r, g, b float64
	if x < 0.5 {
		t := x / 0.5
		r = 72 + t*(231-72)
		g = 52 + t*(111-52)
		b = 212 + t*(81-212)
	} else {
		t := (x - 0.5) / 0.5
		r = 231 + t*(244-231)
		g = 111 + t*(211-111)
		b = 81 + t*(94-81)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Today", "[2] Calendar", "[3] Seasons"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F4A261")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F4A261"))

	spinnerFrames := []string{"◐", "◓", "◑", "◒"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errStyle.Render("ERROR: " + m.lastErr.Error())
	case !m.snapshot.Now.IsZero():
		status = accentStyle.Render(spinner) + dimStyle.Render(" "+m.snapshot.Now.In(m.snapshot.Place.Location()).Format("15:04:05 MST"))
		if !m.snapshot.Following {
			status += dimStyle.Render(" · browsing " + m.snapshot.Date.Format(time.DateOnly))
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for location...")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + m.help.View(m.keys)
}

func animTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
