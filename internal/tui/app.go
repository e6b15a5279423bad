// internal/tui/app.go
//
// This is the terminal console for planboard. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: the App struct below
// 2. Update: turns key presses and store changes into new state
// 3. View: renders state to a string
//
// The plan catalogue lives in a plan.Store owned outside the view. The App
// calls the store's mutations, renders the snapshot they return, and follows
// the store's change feed for the activity list.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/planboard/internal/config"
	"github.com/kingrea/planboard/internal/logbook"
	"github.com/kingrea/planboard/internal/plan"
)

// screen represents which page the main pane shows
type screen int

const (
	screenDashboard screen = iota
	screenPlans
)

// focusArea is the pane that receives key presses.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusTable
	focusForm
	focusConfirm
)

const (
	sidebarWidth     = 28
	maxActivityItems = 8
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithStore injects the plan store the console operates on.
func WithStore(store *plan.Store) AppOption {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// WithLogbook injects the logbook shown in the log panel.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithClock overrides the clock used for activity timestamps in tests.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// changeMsg wraps a store change delivered through the subscription.
type changeMsg struct {
	change plan.Change
}

// subscriptionClosedMsg signals the change feed ended.
type subscriptionClosedMsg struct{}

type activityItem struct {
	at   time.Time
	text string
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config  *config.Config
	store   *plan.Store
	sub     plan.Subscription
	logbook *logbook.Logbook
	now     func() time.Time

	screen screen
	focus  focusArea
	keys   keyMap
	help   help.Model

	sidebar list.Model
	table   table.Model
	form    planForm

	plans     []plan.Plan
	pendingID int64
	activity  []activityItem

	statusMsg string
	width     int
	height    int
}

// sidebarItem implements list.Item for the navigation menu
type sidebarItem struct {
	title  string
	desc   string
	target screen
	exit   bool
}

func (i sidebarItem) Title() string       { return i.title }
func (i sidebarItem) Description() string { return i.desc }
func (i sidebarItem) FilterValue() string { return i.title }

// NewApp creates the console. When no store is injected, one is built from
// the configured seed.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tui: config is required")
	}
	app := &App{
		config: cfg,
		now:    time.Now,
		keys:   defaultKeyMap(),
		help:   help.New(),
		form:   newPlanForm(cfg.DefaultType()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.store == nil {
		seed, err := cfg.SeedPlans()
		if err != nil {
			return nil, err
		}
		store, err := plan.NewStore(plan.WithSeed(seed), plan.WithLogger(app.logbook))
		if err != nil {
			return nil, err
		}
		app.store = store
	}

	app.sidebar = newSidebar()
	app.table = newPlanTable()
	app.sub = app.store.Subscribe()
	app.setPlans(app.store.Plans())
	app.logInfo("Console opened · %d plan(s) loaded", len(app.plans))
	return app, nil
}

func newSidebar() list.Model {
	items := []list.Item{
		sidebarItem{title: "Dashboard", desc: "Overview and recent activity", target: screenDashboard},
		sidebarItem{title: "Plan Management", desc: "Add, activate, delete plans", target: screenPlans},
		sidebarItem{title: "Exit", desc: "Quit planboard", exit: true},
	}
	menu := list.New(items, list.NewDefaultDelegate(), sidebarWidth, 12)
	menu.Title = "⬡ MENU"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	menu.SetShowPagination(false)
	return menu
}

// Close releases the store subscription.
func (a *App) Close() {
	a.sub.Close()
}

// Plans returns the snapshot the console currently renders.
func (a *App) Plans() []plan.Plan {
	out := make([]plan.Plan, len(a.plans))
	copy(out, a.plans)
	return out
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

func (a *App) waitForChange() tea.Cmd {
	changes := a.sub.Changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return subscriptionClosedMsg{}
		}
		return changeMsg{change: change}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case changeMsg:
		a.applyChange(msg.change)
		return a, a.waitForChange()

	case subscriptionClosedMsg:
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.focus {
		case focusConfirm:
			return a.updateConfirm(msg)
		case focusForm:
			return a.updateForm(msg)
		case focusTable:
			return a.updateTable(msg)
		default:
			return a.updateSidebar(msg)
		}
	}
	return a, nil
}

func (a *App) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logInfo("Console closed")
		return a, tea.Quit
	case key.Matches(msg, a.keys.Focus):
		if a.screen == screenPlans {
			a.focusOn(focusTable)
		}
		return a, nil
	case key.Matches(msg, a.keys.Open):
		return a.handleSidebarSelection()
	case a.screen == screenDashboard && key.Matches(msg, a.keys.GoToPlans):
		a.showScreen(screenPlans)
		return a, nil
	}
	var cmd tea.Cmd
	a.sidebar, cmd = a.sidebar.Update(msg)
	return a, cmd
}

func (a *App) handleSidebarSelection() (tea.Model, tea.Cmd) {
	item, ok := a.sidebar.SelectedItem().(sidebarItem)
	if !ok {
		return a, nil
	}
	if item.exit {
		a.logInfo("Console closed")
		return a, tea.Quit
	}
	a.showScreen(item.target)
	return a, nil
}

// showScreen switches the main pane. The plans screen takes focus so the
// table can be driven right away.
func (a *App) showScreen(target screen) {
	a.screen = target
	a.statusMsg = ""
	if target == screenPlans {
		a.focusOn(focusTable)
		return
	}
	a.focusOn(focusSidebar)
}

func (a *App) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logInfo("Console closed")
		return a, tea.Quit
	case key.Matches(msg, a.keys.Focus), key.Matches(msg, a.keys.Back):
		a.focusOn(focusSidebar)
		return a, nil
	case key.Matches(msg, a.keys.NewPlan):
		return a, a.focusOn(focusForm)
	case key.Matches(msg, a.keys.Toggle):
		a.toggleSelected()
		return a, nil
	case key.Matches(msg, a.keys.Delete):
		a.requestDelete()
		return a, nil
	}
	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.form.err = ""
		a.focusOn(focusTable)
		return a, nil
	case key.Matches(msg, a.keys.Submit):
		a.submitForm()
		return a, nil
	case key.Matches(msg, a.keys.NextField):
		return a, a.form.focusField(a.form.focus + 1)
	case key.Matches(msg, a.keys.PrevField):
		return a, a.form.focusField(a.form.focus - 1)
	case a.form.focus == fieldType && key.Matches(msg, a.keys.CycleType):
		a.form.cycleType(msg.String() == "left")
		return a, nil
	}
	return a, a.form.update(msg)
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.confirmDelete()
	case key.Matches(msg, a.keys.Decline):
		a.cancelDelete()
	}
	return a, nil
}

func (a *App) focusOn(area focusArea) tea.Cmd {
	a.focus = area
	switch area {
	case focusTable:
		a.form.blur()
		a.table.Focus()
	case focusForm:
		a.table.Blur()
		return a.form.focusField(fieldName)
	case focusConfirm:
		a.table.Blur()
	default:
		a.form.blur()
		a.table.Blur()
	}
	return nil
}

func (a *App) submitForm() {
	added, plans, err := a.store.Add(a.form.draft())
	if err != nil {
		a.form.err = plan.FieldError(err)
		a.logWarn("Add rejected · %s", a.form.err)
		return
	}
	a.setPlans(plans)
	a.table.SetCursor(len(a.plans) - 1)
	a.form.reset()
	a.form.focusField(fieldName)
	a.statusMsg = successStyle.Render(fmt.Sprintf("Added %s", added.Name))
	a.logInfo("Plan %d added · %s (%s, $%s, %d GB)", added.ID, added.Name, added.Type, added.PriceLabel(), added.Quota)
}

func (a *App) toggleSelected() {
	selected, ok := a.selectedPlan()
	if !ok {
		return
	}
	plans, changed := a.store.Toggle(selected.ID)
	a.setPlans(plans)
	if !changed {
		return
	}
	updated, _ := a.store.Get(selected.ID)
	a.statusMsg = fmt.Sprintf("%s is now %s", updated.Name, activeWord(updated.Active))
	a.logInfo("Plan %d %s · %s", updated.ID, activeWord(updated.Active), updated.Name)
}

func (a *App) requestDelete() {
	selected, ok := a.selectedPlan()
	if !ok {
		return
	}
	a.pendingID = selected.ID
	a.focusOn(focusConfirm)
}

func (a *App) confirmDelete() {
	id := a.pendingID
	a.pendingID = 0
	name := ""
	if p, ok := a.store.Get(id); ok {
		name = p.Name
	}
	plans, removed := a.store.Delete(id)
	a.setPlans(plans)
	a.focusOn(focusTable)
	if !removed {
		return
	}
	a.statusMsg = fmt.Sprintf("Deleted %s", name)
	a.logInfo("Plan %d deleted · %s", id, name)
}

func (a *App) cancelDelete() {
	a.pendingID = 0
	a.statusMsg = "Delete cancelled"
	a.focusOn(focusTable)
}

func (a *App) selectedPlan() (plan.Plan, bool) {
	idx := a.table.Cursor()
	if idx < 0 || idx >= len(a.plans) {
		return plan.Plan{}, false
	}
	return a.plans[idx], true
}

// applyChange records store activity. Changes can arrive after later
// mutations already rendered, so the table is refreshed from the store
// rather than from the change's own snapshot.
func (a *App) applyChange(change plan.Change) {
	a.activity = append([]activityItem{{at: change.At, text: describeChange(change)}}, a.activity...)
	if len(a.activity) > maxActivityItems {
		a.activity = a.activity[:maxActivityItems]
	}
	a.setPlans(a.store.Plans())
}

func (a *App) setPlans(plans []plan.Plan) {
	a.plans = plans
	a.table.SetRows(planRows(plans))
	if a.table.Cursor() >= len(plans) {
		a.table.SetCursor(len(plans) - 1)
	}
	if a.table.Cursor() < 0 && len(plans) > 0 {
		a.table.SetCursor(0)
	}
}

func (a *App) resize() {
	a.help.Width = a.width
	mainHeight := max(8, a.height-14)
	a.sidebar.SetSize(sidebarWidth, mainHeight)
	a.table.SetHeight(max(3, mainHeight-8))
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 110
	}
	mainWidth := max(40, width-sidebarWidth-8)

	sidebarBox := a.paneStyle(a.focus == focusSidebar).Width(sidebarWidth).Render(a.sidebar.View())

	var content string
	switch a.screen {
	case screenPlans:
		content = a.renderPlansScreen(mainWidth)
	default:
		content = a.renderDashboard(mainWidth)
	}
	mainBox := a.paneStyle(a.focus != focusSidebar).Width(mainWidth).Render(content)

	sections := []string{
		headerStyle.Render("⬡ " + strings.ToUpper(a.config.Title())),
		lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, mainBox),
	}
	if logPanel := a.renderLogPanel(width - 4); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, mutedStyle.Render(a.statusMsg), a.help.View(a.helpBindings()))
	return strings.Join(sections, "\n")
}

func (a *App) paneStyle(focused bool) lipgloss.Style {
	if focused {
		return focusedPaneStyle
	}
	return paneStyle
}

func (a *App) helpBindings() bindingSet {
	k := a.keys
	switch a.focus {
	case focusConfirm:
		return bindingSet{k.Confirm, k.Decline}
	case focusForm:
		if a.form.focus == fieldType {
			return bindingSet{k.CycleType, k.NextField, k.Submit, k.Back}
		}
		return bindingSet{k.NextField, k.PrevField, k.Submit, k.Back}
	case focusTable:
		return bindingSet{k.Toggle, k.Delete, k.NewPlan, k.Focus, k.Quit}
	default:
		if a.screen == screenDashboard {
			return bindingSet{k.Open, k.GoToPlans, k.Quit}
		}
		return bindingSet{k.Open, k.Focus, k.Quit}
	}
}

func (a *App) renderLogPanel(width int) string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(a.config.LogLines())
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := sectionTitleStyle.Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return paneStyle.Width(max(20, width)).Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func describeChange(change plan.Change) string {
	switch change.Kind {
	case plan.ChangeAdded:
		return fmt.Sprintf("New plan %s (%s) added", change.Plan.Name, change.Plan.Type)
	case plan.ChangeToggled:
		return fmt.Sprintf("%s marked %s", change.Plan.Name, activeWord(change.Plan.Active))
	case plan.ChangeDeleted:
		return fmt.Sprintf("%s deleted", change.Plan.Name)
	default:
		return fmt.Sprintf("%s changed", change.Plan.Name)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
