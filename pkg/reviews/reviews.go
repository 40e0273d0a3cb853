// Package reviews turns server reviews into display entries.
package reviews

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/sahilm/fuzzy"

	"github.com/neotica/restaurantreview/pkg/model"
)

// Format renders one review as its text followed by an attribution line.
func Format(r model.Review) string {
	return r.Text + "\n- " + r.Name
}

// ToDisplayStrings formats reviews in server order.
func ToDisplayStrings(reviews []model.Review) []string {
	out := make([]string, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, Format(r))
	}
	return out
}

// FuzzyFilter ranks targets against term, best match first. It has the
// bubbles list FilterFunc signature.
func FuzzyFilter(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))
	for i, m := range matches {
		ranks[i] = list.Rank{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return ranks
}
