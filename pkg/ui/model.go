// Package ui is the terminal screen for one restaurant: its details, its
// reviews, and a box to write a new review. The screen is the view side of
// the review-sync controller: it forwards intents to the controller and
// renders whatever the controller notifies.
package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neotica/restaurantreview/pkg/controller"
	"github.com/neotica/restaurantreview/pkg/reviews"
)

// maxDescriptionLines keeps long descriptions from pushing the reviews off screen.
const maxDescriptionLines = 6

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

// outcomeMsg carries a finished request back to the Update loop.
type outcomeMsg struct {
	outcome controller.Outcome
}

// statusMsg sets the one-line status under the input.
type statusMsg struct {
	text string
	err  bool
}

// Model is the bubbletea model for the restaurant screen.
type Model struct {
	ctx   context.Context
	ctrl  *controller.Controller
	theme Theme

	list    list.Model
	input   ReviewInputModel
	spinner spinner.Model
	help    HelpOverlayModel
	desc    descriptionRenderer

	display    controller.Display
	hasDisplay bool
	loading    bool
	status     string
	statusErr  bool
	focus      focusArea
	width      int
	height     int

	// cmds queued by controller notifications, returned from Update
	pending []tea.Cmd

	// For testing: allow overriding the clipboard
	copyText func(string) error
}

// NewModel creates the screen and its controller. The controller is Idle
// until Init runs.
func NewModel(ctx context.Context, cfg controller.Config, rc controller.RestaurantClient, opts ...controller.Option) *Model {
	theme := DefaultTheme(nil)

	l := list.New(nil, ReviewDelegate{Theme: theme}, 0, 0)
	l.Title = "Reviews"
	l.Styles.Title = theme.Renderer.NewStyle().Bold(true).Foreground(theme.Primary)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Filter = reviews.FuzzyFilter
	l.SetStatusBarItemName("review", "reviews")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Renderer.NewStyle().Foreground(theme.Primary)

	m := &Model{
		ctx:      ctx,
		theme:    theme,
		list:     l,
		input:    NewReviewInputModel(theme),
		spinner:  sp,
		help:     NewHelpOverlayModel(theme),
		desc:     descriptionRenderer{style: "dark"},
		copyText: clipboard.WriteAll,
	}
	m.ctrl = controller.New(cfg, rc, m, opts...)
	return m
}

// Controller exposes the state machine behind the screen.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	op, err := m.ctrl.Start()
	if err != nil {
		return nil
	}
	return m.run(op)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case outcomeMsg:
		m.ctrl.Apply(msg.outcome)
		return m, m.flush()

	case statusMsg:
		m.status, m.statusErr = msg.text, msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.help.IsVisible() {
			m.help, _ = m.help.Update(msg)
			return m, nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	switch {
	case m.input.IsCancelled():
		m.input.ClearFlags()
		m.input.Blur()
		m.focus = focusList
		return m, nil
	case m.input.IsSubmitted():
		m.input.ClearFlags()
		return m, m.submit()
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.list.FilterState() == list.Filtering {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.help.Toggle()
		return m, nil
	case "r":
		return m, m.run(m.ctrl.Reload())
	case "i", "tab":
		m.focus = focusInput
		return m, m.input.Focus()
	case "y":
		return m, m.copySelected()
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// submit hands the input text to the controller. Blank text or a busy
// controller yields no command.
func (m *Model) submit() tea.Cmd {
	op := m.ctrl.SubmitReview(m.input.Value())
	if op == nil {
		return nil
	}
	m.input.Blur()
	m.focus = focusList
	return m.run(op)
}

func (m *Model) run(op controller.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg { return outcomeMsg{outcome: op(ctx)} },
		m.spinner.Tick,
	)
}

func (m *Model) copySelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(ReviewItem)
	if !ok {
		return nil
	}
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(item.Entry); err != nil {
			return statusMsg{text: "Copy failed: " + err.Error(), err: true}
		}
		return statusMsg{text: "Copied review to clipboard"}
	}
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmd := tea.Batch(m.pending...)
	m.pending = nil
	return cmd
}

// OnLoadingChanged implements controller.View
func (m *Model) OnLoadingChanged(loading bool) {
	m.loading = loading
	if loading {
		m.status, m.statusErr = "", false
	}
}

// OnRestaurantLoaded implements controller.View
func (m *Model) OnRestaurantLoaded(d controller.Display) {
	m.display = d
	m.hasDisplay = true

	items := make([]list.Item, len(d.Reviews))
	for i, entry := range d.Reviews {
		items[i] = ReviewItem{Entry: entry}
	}
	if cmd := m.list.SetItems(items); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	m.layout()
}

// OnError implements controller.View
func (m *Model) OnError(message string) {
	m.status, m.statusErr = message, true
}

// OnInputCleared implements controller.View
func (m *Model) OnInputCleared() {
	m.input.Reset()
}

// layout sizes the list to whatever the header and input leave free.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.input.SetWidth(m.width)

	used := lipgloss.Height(m.input.View()) + 1 // status line
	if m.hasDisplay {
		used += lipgloss.Height(m.headerView())
	}
	h := m.height - used
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width, h)
}

func (m *Model) headerView() string {
	desc := m.desc.render(m.display.Description, m.width-2)
	desc = clampLines(desc, maxDescriptionLines)
	return renderHeader(m.display, desc, m.width, m.theme)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.help.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
	}

	var sections []string
	if m.hasDisplay {
		sections = append(sections, m.headerView())
	}
	sections = append(sections, m.list.View(), m.input.View(), m.statusView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) statusView() string {
	hint := m.theme.Renderer.NewStyle().Faint(true).Render("? help • r reload • q quit")

	switch {
	case m.loading:
		return m.spinner.View() + " Loading…  " + hint
	case m.status != "":
		color := m.theme.Success
		if m.statusErr {
			color = m.theme.Danger
		}
		return m.theme.Renderer.NewStyle().Foreground(color).Render(m.status) + "  " + hint
	case !m.hasDisplay:
		return m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render("No restaurant loaded") + "  " + hint
	}
	return hint
}

// Loading reports whether the loading indicator is showing.
func (m *Model) Loading() bool { return m.loading }

// Status returns the current status line text.
func (m *Model) Status() string { return m.status }

// Reviews returns the review entries currently in the list.
func (m *Model) Reviews() []string {
	items := m.list.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if r, ok := it.(ReviewItem); ok {
			out = append(out, r.Entry)
		}
	}
	return out
}

func clampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
