package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the global key bindings.
type keyMap struct {
	Quit     key.Binding
	NextView key.Binding
	Today    key.Binding
	Calendar key.Binding
	Seasons  key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Follow   key.Binding
	Up       key.Binding
	Down     key.Binding

	// scroll bindings are only shown in the calendar
	showScroll bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Today:    key.NewBinding(key.WithKeys("1")),
		Calendar: key.NewBinding(key.WithKeys("2")),
		Seasons:  key.NewBinding(key.WithKeys("3")),
		PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Follow:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.PrevDay, k.NextDay}
	if k.showScroll {
		bindings = append(bindings, k.Up)
	}
	return append(bindings, k.Follow, k.NextView, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
