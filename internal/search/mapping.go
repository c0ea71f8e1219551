package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the mapping for catalog documents: the title is
// full text (English stemming plus an unstemmed copy for exact words), the
// rest are keywords used as filters and facets.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting

	// Same source field indexed a second time without stemming, so prefix
	// queries see whole lowercase words.
	titleExactMapping := bleve.NewTextFieldMapping()
	titleExactMapping.Name = "title_exact"
	titleExactMapping.Analyzer = simple.Name
	titleExactMapping.Store = false
	docMapping.AddFieldMappingsAt("title", titleFieldMapping, titleExactMapping)

	for _, field := range []string{"id", "category", "genre", "media"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
