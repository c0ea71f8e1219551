package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search.
type Params struct {
	Query    string // Free text matched against titles
	Category string // Category slug filter, empty for all
	Genre    string // Exact genre name filter, empty for all
	Media    string // "trailer" or "link", empty for all

	Limit  int
	Offset int

	Highlight bool
}

// DefaultLimit caps result size when Params.Limit is unset.
const DefaultLimit = 20

// Result is a page of hits plus per-category counts.
type Result struct {
	Query      string       `json:"query"`
	Total      uint64       `json:"total"`
	TookMs     int64        `json:"took_ms"`
	Hits       []Hit        `json:"hits"`
	Categories []FacetCount `json:"categories,omitempty"`
}

// Hit is a single matching recommendation.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Category   string            `json:"category"`
	Genre      string            `json:"genre"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search runs a title search. A blank query matches nothing.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Query == "" {
		return &Result{Hits: []Hit{}}, nil
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.SortBy([]string{"-_score", "title"})
	req.Fields = []string{"title", "category", "genre"}
	req.AddFacet("category", bleve.NewFacetRequest("category", 5))
	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("title")
	}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}

	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if v, ok := h.Fields["title"].(string); ok {
			hit.Title = v
		}
		if v, ok := h.Fields["category"].(string); ok {
			hit.Category = v
		}
		if v, ok := h.Fields["genre"].(string); ok {
			hit.Genre = v
		}
		if len(h.Fragments) > 0 {
			hit.Highlights = make(map[string]string, len(h.Fragments))
			for field, fragments := range h.Fragments {
				if len(fragments) > 0 {
					hit.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, hit)
	}

	if facet, ok := res.Facets["category"]; ok && facet.Terms != nil {
		for _, term := range facet.Terms.Terms() {
			result.Categories = append(result.Categories, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	return result, nil
}

// buildQuery matches the title (stemmed, fuzzy and by prefix) and ANDs the
// keyword filters.
func buildQuery(params Params) query.Query {
	titleMatch := bleve.NewMatchQuery(params.Query)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)

	textQueries := []query.Query{titleMatch}

	// Typo tolerance for single words only; fuzzy over a phrase never hits.
	lower := strings.ToLower(params.Query)
	if !strings.ContainsAny(lower, " \t") {
		fuzzy := bleve.NewFuzzyQuery(lower)
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("title_exact")
		fuzzy.SetBoost(0.8)
		textQueries = append(textQueries, fuzzy)

		if len(lower) >= 2 {
			prefix := bleve.NewPrefixQuery(lower)
			prefix.SetField("title_exact")
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}
	}

	queries := []query.Query{bleve.NewDisjunctionQuery(textQueries...)}

	for field, value := range map[string]string{
		"category": params.Category,
		"genre":    params.Genre,
		"media":    params.Media,
	} {
		if value == "" {
			continue
		}
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)
		queries = append(queries, tq)
	}

	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
