package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/planboard/internal/plan"
)

type formField int

const (
	fieldName formField = iota
	fieldPrice
	fieldQuota
	fieldType
	fieldCount
)

// planForm holds the add-plan inputs. Field values are kept raw; the
// store's validation gate decides what is acceptable.
type planForm struct {
	inputs      [fieldType]textinput.Model
	kind        plan.Type
	defaultKind plan.Type
	focus       formField
	err         string
}

func newPlanForm(defaultKind plan.Type) planForm {
	f := planForm{kind: defaultKind, defaultKind: defaultKind}
	placeholders := [fieldType]string{"Plan Name", "Price", "Quota (GB)"}
	limits := [fieldType]int{48, 12, 9}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 18
		in.Prompt = ""
		f.inputs[i] = in
	}
	return f
}

// draft captures the current form contents for the validation gate.
func (f *planForm) draft() plan.Draft {
	return plan.Draft{
		Name:  f.inputs[fieldName].Value(),
		Price: f.inputs[fieldPrice].Value(),
		Quota: f.inputs[fieldQuota].Value(),
		Type:  string(f.kind),
	}
}

// reset clears every field and restores the default type.
func (f *planForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.kind = f.defaultKind
	f.err = ""
}

func (f *planForm) focusField(field formField) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range f.inputs {
		if formField(i) == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *planForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *planForm) update(msg tea.Msg) tea.Cmd {
	if f.focus == fieldType {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *planForm) cycleType(backwards bool) {
	if !backwards {
		f.kind = f.kind.Next()
		return
	}
	// two steps forward is one step back over three types
	types := plan.Types()
	for range types[1:] {
		f.kind = f.kind.Next()
	}
}

func (f *planForm) view(active bool) string {
	labels := [fieldType]string{"Name", "Price", "Quota"}
	var cells []string
	for i := range f.inputs {
		label := labels[i]
		if active && formField(i) == f.focus {
			label = sectionTitleStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		cells = append(cells, lipgloss.JoinVertical(lipgloss.Left, label, f.inputs[i].View()))
	}
	cells = append(cells, lipgloss.JoinVertical(lipgloss.Left, f.typeLabel(active), f.typeOptions()))
	row := lipgloss.JoinHorizontal(lipgloss.Top, spaced(cells)...)

	lines := []string{sectionTitleStyle.Render("Add Plan"), row}
	if f.err != "" {
		lines = append(lines, errorStyle.Render("⚠ "+f.err))
	}
	return strings.Join(lines, "\n")
}

func (f *planForm) typeLabel(active bool) string {
	if active && f.focus == fieldType {
		return sectionTitleStyle.Render("Type")
	}
	return mutedStyle.Render("Type")
}

func (f *planForm) typeOptions() string {
	var parts []string
	for _, t := range plan.Types() {
		if t == f.kind {
			parts = append(parts, selectedTypeStyle.Render(fmt.Sprintf("[%s]", t)))
			continue
		}
		parts = append(parts, mutedStyle.Render(string(t)))
	}
	return strings.Join(parts, " ")
}

func spaced(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, cell := range cells {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, cell)
	}
	return out
}
