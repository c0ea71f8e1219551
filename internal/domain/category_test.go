package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCategories_DisplayOrder(t *testing.T) {
	names := make([]string, 0, 5)
	for _, c := range AllCategories() {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{"Movies", "Books", "Anime", "Courses", "Games"}, names)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"Movies", CategoryMovies, false},
		{"books", CategoryBooks, false},
		{" ANIME ", CategoryAnime, false},
		{"courses", CategoryCourses, false},
		{"Games", CategoryGames, false},
		{"Podcasts", CategoryNone, true},
		{"", CategoryNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Attributes(t *testing.T) {
	for _, c := range AllCategories() {
		t.Run(c.String(), func(t *testing.T) {
			assert.True(t, c.Valid())
			assert.NotEmpty(t, c.Slug())
			assert.NotEqual(t, "⭐", c.Emoji())
		})
	}

	assert.False(t, CategoryNone.Valid())
	assert.Equal(t, "", CategoryNone.String())
	assert.Equal(t, "🎬", CategoryMovies.Emoji())
	assert.Equal(t, "🌸", CategoryAnime.Emoji())
}

func TestCategory_JSONRoundTrip(t *testing.T) {
	rec := Recommendation{Title: "John Wick", Category: CategoryMovies, Genre: "Action"}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"Movies"`)

	var decoded Recommendation
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","category":"anime"}`), &decoded))
	assert.Equal(t, CategoryAnime, decoded.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":"podcasts"}`), &decoded))
}

func TestRecommendation_Optionals(t *testing.T) {
	rec := Recommendation{Title: "Gone Girl", ExternalLink: "https://www.goodreads.com/book/show/19288043-gone-girl"}
	assert.True(t, rec.HasLink())
	assert.False(t, rec.HasTrailer())

	member := TeamMember{Name: "Abdul Moiz", Role: "Team Lead"}
	assert.True(t, member.IsLead())
}
