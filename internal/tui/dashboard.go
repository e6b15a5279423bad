package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type statCard struct {
	title string
	value string
}

func (a *App) statCards() []statCard {
	active := 0
	for _, p := range a.plans {
		if p.Active {
			active++
		}
	}
	return []statCard{
		{title: "Plans", value: fmt.Sprintf("%d", len(a.plans))},
		{title: "Active", value: fmt.Sprintf("%d", active)},
		{title: "Inactive", value: fmt.Sprintf("%d", len(a.plans)-active)},
	}
}

type actionCard struct {
	title string
	desc  string
	label string
	key   key.Binding
}

func (a *App) actionCards() []actionCard {
	return []actionCard{
		{title: "Plan Management", desc: "Add and manage subscription plans.", label: "Go to Plans", key: a.keys.GoToPlans},
	}
}

func (a *App) renderDashboard(width int) string {
	var actions []string
	for _, card := range a.actionCards() {
		help := card.key.Help()
		actions = append(actions, cardStyle.Render(
			cardValueStyle.Render(card.title)+"\n"+
				mutedStyle.Render(card.desc)+"\n"+
				selectedTypeStyle.Render(fmt.Sprintf("[%s] %s", help.Key, card.label)),
		))
	}

	var cards []string
	for _, card := range a.statCards() {
		cards = append(cards, cardStyle.Render(
			mutedStyle.Render(card.title)+"\n"+cardValueStyle.Render(card.value),
		))
	}
	parts := []string{
		sectionTitleStyle.Render("Dashboard"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, actions...),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		a.renderActivity(),
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(parts, "\n"))
}

func (a *App) renderActivity() string {
	title := sectionTitleStyle.Render("Recent Activity")
	if len(a.activity) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("Nothing yet this session."))
	}
	now := a.now()
	lines := make([]string, 0, len(a.activity))
	for _, item := range a.activity {
		lines = append(lines, fmt.Sprintf("• %s %s", item.text, mutedStyle.Render(humanizeDuration(now.Sub(item.at))+" ago")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func humanizeDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
