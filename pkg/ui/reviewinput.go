package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// ReviewInputModel is the text box a new review is typed into
type ReviewInputModel struct {
	textarea textarea.Model
	width    int
	theme    Theme

	submitted bool
	cancelled bool
}

// NewReviewInputModel creates an unfocused review input
func NewReviewInputModel(theme Theme) ReviewInputModel {
	ta := textarea.New()
	ta.Placeholder = "Write your review..."
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(3)

	return ReviewInputModel{
		textarea: ta,
		theme:    theme,
	}
}

// Update handles keys while the input has focus
func (m ReviewInputModel) Update(msg tea.Msg) (ReviewInputModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "ctrl+s", "ctrl+j":
			// ctrl+j is alternate for terminals that don't support ctrl+enter
			m.submitted = true
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the input in a box whose border shows focus
func (m ReviewInputModel) View() string {
	var b strings.Builder

	label := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	b.WriteString(label.Render("Your review"))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())

	style := m.theme.PanelStyle()
	if m.textarea.Focused() {
		style = m.theme.FocusedPanelStyle()
	}
	return style.Padding(0, 1).Render(b.String())
}

// SetWidth sets the outer width of the box
func (m *ReviewInputModel) SetWidth(width int) {
	m.width = width
	taWidth := width - 4
	if taWidth < 20 {
		taWidth = 20
	}
	m.textarea.SetWidth(taWidth)
}

// Focus gives the textarea the cursor
func (m *ReviewInputModel) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes focus, the terminal analogue of dismissing the keyboard
func (m *ReviewInputModel) Blur() {
	m.textarea.Blur()
}

// Focused reports whether the input has focus
func (m ReviewInputModel) Focused() bool {
	return m.textarea.Focused()
}

// Value returns the current text
func (m ReviewInputModel) Value() string {
	return m.textarea.Value()
}

// IsSubmitted returns true if the user asked to send the review
func (m ReviewInputModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the user left the input
func (m ReviewInputModel) IsCancelled() bool {
	return m.cancelled
}

// ClearFlags forgets a handled submit or cancel
func (m *ReviewInputModel) ClearFlags() {
	m.submitted = false
	m.cancelled = false
}

// Reset empties the text
func (m *ReviewInputModel) Reset() {
	m.ClearFlags()
	m.textarea.Reset()
}
