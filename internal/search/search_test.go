package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlife/recommender/internal/catalog"
	"github.com/smartlife/recommender/internal/domain"
)

// setupTestIndex indexes the bundled catalog.
func setupTestIndex(t *testing.T) (*Index, *catalog.Store) {
	t.Helper()

	seed, err := catalog.DefaultSeed()
	require.NoError(t, err)
	store := catalog.New(nil, nil)
	require.NoError(t, store.Initialize(seed))

	index, err := NewIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	require.NoError(t, index.IndexRecommendations(store.All()))
	return index, store
}

func titles(res *Result) []string {
	out := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		out = append(out, h.Title)
	}
	return out
}

func TestNewIndex_Empty(t *testing.T) {
	index, err := NewIndex(nil)
	require.NoError(t, err)
	defer index.Close()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIndex_IndexesWholeCatalog(t *testing.T) {
	index, store := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(store.Count()), count)
}

func TestSearch_ByTitleWord(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "wick"})
	require.NoError(t, err)

	assert.Subset(t, titles(res), []string{"John Wick", "John Wick: Chapter 4"})
	for _, h := range res.Hits {
		assert.Equal(t, "movies", h.Category)
		assert.Equal(t, "Action", h.Genre)
	}
}

func TestSearch_Prefix(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "interst"})
	require.NoError(t, err)
	assert.Contains(t, titles(res), "Interstellar")
}

func TestSearch_Typo(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "hobit"})
	require.NoError(t, err)
	assert.Contains(t, titles(res), "The Hobbit")
}

func TestSearch_CategoryFilter(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "the", Category: domain.CategoryBooks.Slug(), Limit: 100})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	for _, h := range res.Hits {
		assert.Equal(t, "books", h.Category)
	}
}

func TestSearch_MediaFilter(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "the", Media: "trailer", Limit: 100})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	for _, h := range res.Hits {
		assert.Contains(t, []string{"movies", "anime"}, h.Category)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "   "})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
	assert.Zero(t, res.Total)
}

func TestSearch_LimitAndFacets(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "the", Limit: 3})
	require.NoError(t, err)
	assert.Len(t, res.Hits, 3)
	assert.Greater(t, res.Total, uint64(3))
	assert.NotEmpty(t, res.Categories)
}

func TestSearch_Highlight(t *testing.T) {
	index, _ := setupTestIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "matrix", Highlight: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Contains(t, res.Hits[0].Highlights["title"], "Matrix")
}

func TestIndex_Rebuild(t *testing.T) {
	index, store := setupTestIndex(t)

	movies := store.Recommendations(domain.CategoryMovies, "Action")
	require.NoError(t, index.Rebuild(movies))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(movies)), count)

	res, err := index.Search(context.Background(), Params{Query: "hobbit"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(domain.Recommendation{
		ID:         "x",
		Title:      "Your Name",
		TrailerRef: "https://www.youtube.com/watch?v=xU47nhruN-Q",
		Category:   domain.CategoryAnime,
		Genre:      "Romance",
	})

	assert.Equal(t, "anime", doc.Category)
	assert.Equal(t, "trailer", doc.Media)
	assert.Equal(t, "Romance", doc.ToMap()["genre"])
}
