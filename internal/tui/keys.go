package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Focus     key.Binding
	Back      key.Binding
	Open      key.Binding
	GoToPlans key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	NewPlan   key.Binding
	NextField key.Binding
	PrevField key.Binding
	CycleType key.Binding
	Submit    key.Binding
	Confirm   key.Binding
	Decline   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		GoToPlans: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "go to plans"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "activate/deactivate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete", "x"),
			key.WithHelp("d", "delete"),
		),
		NewPlan: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add plan"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("left", "right", " "),
			key.WithHelp("←/→", "change type"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add plan"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "delete"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "keep"),
		),
	}
}

// bindingSet adapts a slice of bindings to help.KeyMap.
type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding { return b }

func (b bindingSet) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
