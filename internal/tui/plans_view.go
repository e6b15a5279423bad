package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/planboard/internal/plan"
)

func newPlanTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Type", Width: 9},
		{Title: "Price ($)", Width: 10},
		{Title: "Quota (GB)", Width: 10},
		{Title: "Active", Width: 6},
		{Title: "Action", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(accentColor).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func planRows(plans []plan.Plan) []table.Row {
	rows := make([]table.Row, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, table.Row{
			p.Name,
			string(p.Type),
			p.PriceLabel(),
			strconv.FormatInt(p.Quota, 10),
			p.ActiveLabel(),
			p.ToggleLabel(),
		})
	}
	return rows
}

func (a *App) renderPlansScreen(width int) string {
	title := sectionTitleStyle.Render(fmt.Sprintf("Plan Management (%d)", len(a.plans)))
	form := a.form.view(a.focus == focusForm)

	var body string
	if len(a.plans) == 0 {
		body = mutedStyle.Render("No plans yet. Press a to add one.")
	} else {
		body = a.table.View()
	}

	parts := []string{title, "", form, "", body}
	if a.focus == focusConfirm {
		parts = append(parts, "", a.renderConfirm())
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(parts, "\n"))
}

func (a *App) renderConfirm() string {
	name := "this plan"
	if p, ok := a.store.Get(a.pendingID); ok {
		name = p.Name
	}
	prompt := fmt.Sprintf("Are you sure you want to delete %s?", name)
	return confirmStyle.Render(prompt + "\n" + mutedStyle.Render("y → delete    n/esc → keep"))
}
