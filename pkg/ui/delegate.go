package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// ReviewDelegate renders a review as its text line over its attribution line.
type ReviewDelegate struct {
	Theme Theme
}

func (d ReviewDelegate) Height() int {
	return 2
}

func (d ReviewDelegate) Spacing() int {
	return 1
}

func (d ReviewDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d ReviewDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(ReviewItem)
	if !ok {
		return
	}

	selected := index == m.Index()

	width := m.Width() - 4 // gutter + padding
	if width < 10 {
		width = 10
	}

	// Multi-line review text is flattened so each item keeps a fixed height.
	text := strings.Join(strings.Fields(i.Title()), " ")
	text = runewidth.Truncate(text, width, "…")
	by := runewidth.Truncate(i.Description(), width, "…")

	gutter := "  "
	textStyle := d.Theme.Renderer.NewStyle().Foreground(d.Theme.Subtext)
	byStyle := d.Theme.Renderer.NewStyle().Foreground(d.Theme.Secondary).Italic(true)
	if selected {
		gutter = d.Theme.Renderer.NewStyle().Foreground(d.Theme.Primary).Render("│ ")
		textStyle = textStyle.Foreground(d.Theme.Primary).Bold(true)
	}

	fmt.Fprintf(w, "%s%s\n%s%s", gutter, textStyle.Render(text), gutter, byStyle.Render(by))
}
