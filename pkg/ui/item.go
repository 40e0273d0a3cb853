package ui

import "strings"

// ReviewItem wraps one formatted review entry to implement list.Item
type ReviewItem struct {
	Entry string
}

// Title is the review text.
func (i ReviewItem) Title() string {
	text, _ := splitEntry(i.Entry)
	return text
}

// Description is the attribution line.
func (i ReviewItem) Description() string {
	_, by := splitEntry(i.Entry)
	return by
}

func (i ReviewItem) FilterValue() string {
	return i.Entry
}

// splitEntry separates "text\n- name" into its two lines.
func splitEntry(entry string) (string, string) {
	idx := strings.LastIndex(entry, "\n")
	if idx < 0 {
		return entry, ""
	}
	return entry[:idx], entry[idx+1:]
}
