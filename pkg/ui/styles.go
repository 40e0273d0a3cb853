package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")
	ColorStar    = lipgloss.Color("#F1FA8C")
)

// Theme bundles a renderer with the semantic colors the screen uses.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Star      lipgloss.AdaptiveColor
}

// DefaultTheme returns the Dracula theme bound to r. A nil renderer uses the
// default lipgloss renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: string(ColorPrimary)},
		Secondary: lipgloss.AdaptiveColor{Light: "#4B5563", Dark: string(ColorMuted)},
		Subtext:   lipgloss.AdaptiveColor{Light: "#374151", Dark: string(ColorSubtext)},
		Border:    lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: string(ColorBgHighlight)},
		Success:   lipgloss.AdaptiveColor{Light: "#15803D", Dark: string(ColorSuccess)},
		Danger:    lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: string(ColorDanger)},
		Star:      lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: string(ColorStar)},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

// PanelStyle is the style for the unfocused review input
func (t Theme) PanelStyle() lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
}

// FocusedPanelStyle is the style for the focused review input
func (t Theme) FocusedPanelStyle() lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary)
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderRating renders a rating like "★ 4.2". Zero renders nothing.
func RenderRating(rating float64, t Theme) string {
	if rating <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Star).
		Bold(true).
		Render(fmt.Sprintf("★ %.1f", rating))
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}
