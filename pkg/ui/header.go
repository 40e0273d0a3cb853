package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/neotica/restaurantreview/pkg/controller"
)

// descriptionRenderer caches glamour output; building a renderer is costly
// and the description only changes on a new snapshot or resize.
type descriptionRenderer struct {
	style string
	width int
	src   string
	out   string
}

func (r *descriptionRenderer) render(src string, width int) string {
	if src == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if src == r.src && width == r.width {
		return r.out
	}

	out := src
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := tr.Render(src); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}

	r.src, r.width, r.out = src, width, out
	return out
}

// renderHeader draws the restaurant title block.
func renderHeader(d controller.Display, desc string, width int, t Theme) string {
	var b strings.Builder

	title := t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render(d.Name)
	if rating := RenderRating(d.Rating, t); rating != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", rating)
	}
	b.WriteString(title)

	var where []string
	for _, s := range []string{d.Address, d.City} {
		if s != "" {
			where = append(where, s)
		}
	}
	if len(where) > 0 {
		b.WriteString("\n")
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Render(strings.Join(where, ", ")))
	}

	if d.PictureURL != "" {
		b.WriteString("\n")
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Faint(true).Render(d.PictureURL))
	}

	if desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
	}

	b.WriteString("\n")
	b.WriteString(RenderDivider(width, t))
	return b.String()
}
