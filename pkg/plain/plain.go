// Package plain renders the restaurant screen as plain lines, for pipes,
// scripts and terminals where the full-screen UI is unwanted.
package plain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/neotica/restaurantreview/pkg/controller"
)

// View writes controller notifications to w.
type View struct {
	w       io.Writer
	title   lipgloss.Style
	muted   lipgloss.Style
	lastErr string
	cleared bool
}

// NewView creates a View writing to w. Styles follow the color profile of w.
func NewView(w io.Writer) *View {
	r := lipgloss.NewRenderer(w)
	return &View{
		w:     w,
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Faint(true),
	}
}

// OnLoadingChanged implements controller.View
func (v *View) OnLoadingChanged(loading bool) {
	if loading {
		v.lastErr = ""
		v.cleared = false
		fmt.Fprintln(v.w, v.muted.Render("Loading…"))
	}
}

// OnRestaurantLoaded implements controller.View
func (v *View) OnRestaurantLoaded(d controller.Display) {
	fmt.Fprintln(v.w, v.title.Render(d.Name))
	var meta []string
	if d.City != "" {
		meta = append(meta, d.City)
	}
	if d.Rating > 0 {
		meta = append(meta, fmt.Sprintf("★ %.1f", d.Rating))
	}
	if len(meta) > 0 {
		fmt.Fprintln(v.w, strings.Join(meta, " · "))
	}
	if d.PictureURL != "" {
		fmt.Fprintln(v.w, v.muted.Render(d.PictureURL))
	}
	if d.Description != "" {
		fmt.Fprintln(v.w)
		fmt.Fprintln(v.w, d.Description)
	}

	fmt.Fprintln(v.w)
	fmt.Fprintf(v.w, "Reviews (%d)\n", len(d.Reviews))
	for _, entry := range d.Reviews {
		for _, line := range strings.Split(entry, "\n") {
			fmt.Fprintln(v.w, "  "+line)
		}
		fmt.Fprintln(v.w)
	}
}

// OnError implements controller.View
func (v *View) OnError(message string) {
	v.lastErr = message
	fmt.Fprintln(v.w, "error: "+message)
}

// OnInputCleared implements controller.View
func (v *View) OnInputCleared() {
	v.cleared = true
	fmt.Fprintln(v.w, "Review posted.")
}

// Prompter asks the user for review text. Empty text skips posting.
type Prompter func(ctx context.Context) (string, error)

// HuhPrompt asks for a review with an interactive text field.
func HuhPrompt(ctx context.Context) (string, error) {
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Write a review").
			Description("Leave empty to skip").
			CharLimit(1000).
			Value(&text),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return text, nil
}

// Run loads the restaurant and, when review is non-blank or prompt yields
// text, posts one review. It returns an error if either request fails.
func Run(ctx context.Context, ctrl *controller.Controller, v *View, review string, prompt Prompter) error {
	op, err := ctrl.Start()
	if err != nil {
		return err
	}
	ctrl.Run(ctx, op)
	if ctrl.State().Phase() == controller.PhaseFailed {
		return fmt.Errorf("loading restaurant: %s", ctrl.State().Reason())
	}

	if strings.TrimSpace(review) == "" && prompt != nil {
		review, err = prompt(ctx)
		if err != nil {
			return fmt.Errorf("reading review: %w", err)
		}
	}

	post := ctrl.SubmitReview(review)
	if post == nil {
		return nil
	}
	ctrl.Run(ctx, post)
	if !v.cleared {
		return fmt.Errorf("posting review: %s", v.lastErr)
	}
	return nil
}
