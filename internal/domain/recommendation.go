package domain

// Recommendation is a single catalog entry: something to watch, read, play or
// learn. Records are immutable once the catalog is loaded.
type Recommendation struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ImageRef     string   `json:"image_ref"`               // Relative to the assets dir: "images/movies/action/john_wick.jpg"
	ExternalLink string   `json:"external_link,omitempty"` // Empty when no link is available
	TrailerRef   string   `json:"trailer_ref,omitempty"`   // Raw trailer URL, empty when none
	Category     Category `json:"category"`
	Genre        string   `json:"genre"`
}

// HasLink reports whether the recommendation points to an external page.
func (r *Recommendation) HasLink() bool {
	return r.ExternalLink != ""
}

// HasTrailer reports whether a trailer reference is present.
func (r *Recommendation) HasTrailer() bool {
	return r.TrailerRef != ""
}
