// Package search provides full-text search over the recommendation catalog
// using an in-memory Bleve index.
package search

import (
	"github.com/smartlife/recommender/internal/domain"
)

// Document is the indexed form of a recommendation.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"` // category slug, keyword
	Genre    string `json:"genre"`    // genre name, keyword
	// Media is "trailer" for items with a trailer and "link" otherwise.
	Media string `json:"media"`
}

// NewDocument converts a recommendation to its index document.
func NewDocument(rec domain.Recommendation) *Document {
	media := "link"
	if rec.HasTrailer() {
		media = "trailer"
	}
	return &Document{
		ID:       rec.ID,
		Title:    rec.Title,
		Category: rec.Category.Slug(),
		Genre:    rec.Genre,
		Media:    media,
	}
}

// ToMap returns the document keyed by mapped field names.
func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"id":       d.ID,
		"title":    d.Title,
		"category": d.Category,
		"genre":    d.Genre,
		"media":    d.Media,
	}
}
