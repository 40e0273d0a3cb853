package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/neotica/restaurantreview/pkg/journal"
	"github.com/neotica/restaurantreview/pkg/model"
)

// printHistory writes the newest journal entries for restaurantID as a table.
func printHistory(ctx context.Context, w io.Writer, j *journal.Journal, restaurantID string, limit int) error {
	subs, err := j.Recent(ctx, restaurantID, limit)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Fprintln(w, "No reviews submitted yet.")
		return nil
	}

	r := lipgloss.NewRenderer(w)
	posted := r.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	failed := r.NewStyle().Foreground(lipgloss.Color("#FF5555"))

	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		outcome := posted.Render(s.Outcome)
		if s.Outcome == model.SubmissionFailed {
			outcome = failed.Render(s.Outcome)
		}
		rows = append(rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Reviewer,
			outcome,
			runewidth.Truncate(s.Text, 48, "…"),
			runewidth.Truncate(s.Error, 32, "…"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#44475A"))).
		Headers("WHEN", "REVIEWER", "OUTCOME", "REVIEW", "ERROR").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
	return nil
}
