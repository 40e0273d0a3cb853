package model

// Restaurant is a server snapshot of one restaurant and its customer reviews.
// Snapshots are never edited in place; a newer response replaces them whole.
type Restaurant struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city,omitempty"`
	Address     string   `json:"address,omitempty"`
	PictureID   string   `json:"pictureId"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     []Review `json:"customerReviews"`
}

// Review is a single customer review as returned by the server
type Review struct {
	Name string `json:"name"`
	Text string `json:"review"`
	Date string `json:"date,omitempty"`
}

// HasHeader reports whether the snapshot carries restaurant details and not
// just a review list.
func (r Restaurant) HasHeader() bool {
	return r.Name != ""
}

// WithHeaderFrom returns a copy of r whose detail fields come from prev.
// The review list is always r's own.
func (r Restaurant) WithHeaderFrom(prev Restaurant) Restaurant {
	out := prev.Clone()
	if r.ID != "" {
		out.ID = r.ID
	}
	out.Reviews = cloneReviews(r.Reviews)
	return out
}

// Clone creates a deep copy of the restaurant
func (r Restaurant) Clone() Restaurant {
	clone := r
	clone.Reviews = cloneReviews(r.Reviews)
	return clone
}

func cloneReviews(in []Review) []Review {
	if in == nil {
		return nil
	}
	out := make([]Review, len(in))
	copy(out, in)
	return out
}
