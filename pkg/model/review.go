package model

import "time"

// Submission is one attempt to post a review, kept in the local journal
type Submission struct {
	ID           int64     `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Reviewer     string    `json:"reviewer"`
	Text         string    `json:"text"`
	Outcome      string    `json:"outcome"` // posted, failed
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submission outcome constants
const (
	SubmissionPosted = "posted"
	SubmissionFailed = "failed"
)

// IsValidSubmissionOutcome checks if a submission outcome is valid
func IsValidSubmissionOutcome(outcome string) bool {
	switch outcome {
	case SubmissionPosted, SubmissionFailed:
		return true
	}
	return false
}
